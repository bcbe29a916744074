package http

import (
	"encoding/json"
	"net/http"
	"time"

	"stokvel-backend/internal/domain"
)

type createGroupRequest struct {
	Name              string `json:"name"`
	ContributionCents int64  `json:"contribution_cents"`
	MemberLimit       int32  `json:"member_limit"`
	Currency          string `json:"currency"`
	PayoutType        string `json:"payout_type"`
	Frequency         string `json:"frequency"`
	Duration          int32  `json:"duration"`
	StartDate         string `json:"start_date"` // yyyy-mm-dd
	PenaltyCents      int64  `json:"penalty_cents"`
	PenaltyGraceDays  int32  `json:"penalty_grace_days"`
	AllowDeferrals    bool   `json:"allow_deferrals"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, domain.NewValidation("invalid start_date %q", req.StartDate))
		return
	}

	identity := identityFrom(r)
	group := &domain.Group{
		Name:              req.Name,
		ContributionCents: req.ContributionCents,
		MemberLimit:       req.MemberLimit,
		Currency:          req.Currency,
		PayoutType:        domain.PayoutType(req.PayoutType),
		Frequency:         domain.Frequency(req.Frequency),
		Duration:          req.Duration,
		StartDate:         startDate,
	}
	settings := &domain.GroupSettings{
		PenaltyCents:     req.PenaltyCents,
		PenaltyGraceDays: req.PenaltyGraceDays,
		AllowDeferrals:   req.AllowDeferrals,
	}
	if err := s.groups.CreateGroup(r.Context(), identity.MemberID, group, settings); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"group": group, "settings": settings})
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	group, settings, err := s.groups.GetGroup(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"group": group, "settings": settings})
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

type updateSettingsRequest struct {
	PenaltyCents     int64 `json:"penalty_cents"`
	PenaltyGraceDays int32 `json:"penalty_grace_days"`
	AllowDeferrals   bool  `json:"allow_deferrals"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}
	settings := &domain.GroupSettings{
		GroupID:          id,
		PenaltyCents:     req.PenaltyCents,
		PenaltyGraceDays: req.PenaltyGraceDays,
		AllowDeferrals:   req.AllowDeferrals,
	}
	if err := s.groups.UpdateSettings(r.Context(), identityFrom(r), settings); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

type registerMemberRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (s *Server) handleRegisterMember(w http.ResponseWriter, r *http.Request) {
	var req registerMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}
	member := &domain.Member{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		NationalID: req.NationalID,
		Email:      req.Email,
		Phone:      req.Phone,
	}
	if err := s.members.RegisterMember(r.Context(), member); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"member": member})
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	member, err := s.members.GetMember(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"member": member})
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.members.ListMembers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}
