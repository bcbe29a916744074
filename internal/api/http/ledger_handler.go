package http

import (
	"encoding/json"
	"net/http"
	"time"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/service"
)

type recordContributionRequest struct {
	MembershipID  int64  `json:"membership_id"`
	AmountCents   int64  `json:"amount_cents"`
	PaymentMethod string `json:"payment_method"`
	Reference     string `json:"reference"`
	Date          string `json:"date"` // yyyy-mm-dd, defaults to today
	ProofRef      string `json:"proof_ref"`
}

func (s *Server) handleRecordContribution(w http.ResponseWriter, r *http.Request) {
	var req recordContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}
	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, domain.NewValidation("invalid date %q", req.Date))
			return
		}
		date = parsed
	}

	contribution, err := s.contributions.RecordContribution(r.Context(), service.RecordContributionInput{
		MembershipID:  req.MembershipID,
		AmountCents:   req.AmountCents,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Date:          date,
		ProofRef:      req.ProofRef,
		CreatedBy:     identityFrom(r).MemberID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"contribution": contribution})
}

type confirmContributionRequest struct {
	Status string `json:"status"` // SUCCESS or FAIL
}

func (s *Server) handleConfirmContribution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req confirmContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}
	if err := s.contributions.ConfirmContribution(r.Context(), id, domain.PaymentStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleListContributions(w http.ResponseWriter, r *http.Request) {
	q, err := ledgerQueryFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	contributions, err := s.contributions.ListContributions(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := s.contributions.TotalContributions(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contributions": contributions, "total_cents": total})
}

type recordPayoutRequest struct {
	MembershipID  int64  `json:"membership_id"`
	AmountCents   int64  `json:"amount_cents"`
	PaymentMethod string `json:"payment_method"`
	Reference     string `json:"reference"`
	Date          string `json:"date"`
	ProofRef      string `json:"proof_ref"`
}

func (s *Server) handleRecordPayout(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if !identityFrom(r).IsOwner() {
		writeError(w, domain.NewAuthorization("only a group owner may record payouts"))
		return
	}
	var req recordPayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}
	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, domain.NewValidation("invalid date %q", req.Date))
			return
		}
		date = parsed
	}

	payout, err := s.payouts.RecordPayout(r.Context(), service.RecordPayoutInput{
		GroupID:       groupID,
		MembershipID:  req.MembershipID,
		AmountCents:   req.AmountCents,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Date:          date,
		ProofRef:      req.ProofRef,
		CreatedBy:     identityFrom(r).MemberID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"payout": payout})
}

func (s *Server) handleAdvanceCycle(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if !identityFrom(r).IsOwner() {
		writeError(w, domain.NewAuthorization("only a group owner may advance the cycle"))
		return
	}
	group, err := s.payouts.AdvanceCycle(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"group": group})
}

func (s *Server) handleNextPayout(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := s.payouts.NextPayoutDate(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	recipient, err := s.payouts.NextRecipient(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"next_payout_date": date.Format("2006-01-02"),
		"next_recipient":   recipient,
	})
}

func (s *Server) handleMemberReport(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q, err := ledgerQueryFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := s.reports.MemberReport(r.Context(), memberID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}

func (s *Server) handleGroupReport(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q, err := ledgerQueryFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := s.reports.GroupReport(r.Context(), groupID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}
