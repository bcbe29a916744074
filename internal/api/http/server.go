// Package http is the excluded web surface: request decoding, identity
// extraction and status mapping only. Every rule the core enforces lives in
// the services, not here.
package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/security"
	"stokvel-backend/internal/service"
	"stokvel-backend/internal/storage"
)

type contextKey string

const identityKey contextKey = "identity"

// Server wires the service layer to JSON endpoints.
type Server struct {
	groups        service.GroupService
	members       service.MemberService
	memberships   service.MembershipService
	contributions service.ContributionService
	payouts       service.PayoutService
	reports       service.ReportService
	tokens        security.TokenManager
	proofs        storage.ProofStorage
}

func NewServer(
	groups service.GroupService,
	members service.MemberService,
	memberships service.MembershipService,
	contributions service.ContributionService,
	payouts service.PayoutService,
	reports service.ReportService,
	tokens security.TokenManager,
	proofs storage.ProofStorage,
) *Server {
	return &Server{
		groups:        groups,
		members:       members,
		memberships:   memberships,
		contributions: contributions,
		payouts:       payouts,
		reports:       reports,
		tokens:        tokens,
		proofs:        proofs,
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.authMiddleware)

	api.HandleFunc("/members", s.handleRegisterMember).Methods(http.MethodPost)
	api.HandleFunc("/members", s.handleListMembers).Methods(http.MethodGet)
	api.HandleFunc("/members/{id}", s.handleGetMember).Methods(http.MethodGet)

	api.HandleFunc("/groups", s.handleCreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/groups", s.handleListGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", s.handleGetGroup).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}/settings", s.handleUpdateSettings).Methods(http.MethodPut)

	api.HandleFunc("/groups/{id}/join-requests", s.handleSubmitJoinRequest).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/join-requests", s.handleListJoinRequests).Methods(http.MethodGet)
	api.HandleFunc("/join-requests/{id}/accept", s.handleAcceptJoinRequest).Methods(http.MethodPost)
	api.HandleFunc("/join-requests/{id}/reject", s.handleRejectJoinRequest).Methods(http.MethodPost)
	api.HandleFunc("/join-requests/{id}", s.handleDeleteJoinRequest).Methods(http.MethodDelete)

	api.HandleFunc("/groups/{id}/leave-requests", s.handleSubmitLeaveRequest).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/leave-requests", s.handleListLeaveRequests).Methods(http.MethodGet)
	api.HandleFunc("/leave-requests/{id}/approve", s.handleApproveLeaveRequest).Methods(http.MethodPost)
	api.HandleFunc("/leave-requests/{id}/reject", s.handleRejectLeaveRequest).Methods(http.MethodPost)
	api.HandleFunc("/leave-requests/{id}", s.handleDeleteLeaveRequest).Methods(http.MethodDelete)

	api.HandleFunc("/contributions", s.handleRecordContribution).Methods(http.MethodPost)
	api.HandleFunc("/contributions/{id}/confirm", s.handleConfirmContribution).Methods(http.MethodPost)
	api.HandleFunc("/contributions", s.handleListContributions).Methods(http.MethodGet)

	api.HandleFunc("/groups/{id}/payouts", s.handleRecordPayout).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/advance-cycle", s.handleAdvanceCycle).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/next-payout", s.handleNextPayout).Methods(http.MethodGet)

	api.HandleFunc("/reports/members/{id}", s.handleMemberReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/groups/{id}", s.handleGroupReport).Methods(http.MethodGet)

	api.HandleFunc("/proofs", s.handleUploadProof).Methods(http.MethodPost)
	api.HandleFunc("/proofs/{ref}", s.handleDownloadProof).Methods(http.MethodGet)

	return r
}

// authMiddleware validates the bearer token and stashes the identity context
// for handlers to pass explicitly into the core.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorBody{Kind: domain.KindAuthorization, Message: "missing bearer token"})
			return
		}
		identity, err := s.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Kind: domain.KindAuthorization, Message: err.Error()})
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(r *http.Request) domain.Identity {
	identity, _ := r.Context().Value(identityKey).(domain.Identity)
	return identity
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidation("invalid %s %q", name, raw)
	}
	return id, nil
}

// ledgerQueryFrom parses the shared filter grammar from query parameters:
// from/to as yyyy-mm-dd and an optional status.
func ledgerQueryFrom(r *http.Request) (domain.LedgerQuery, error) {
	var q domain.LedgerQuery
	params := r.URL.Query()

	if raw := params.Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return q, domain.NewValidation("invalid from date %q", raw)
		}
		q.From = &t
	}
	if raw := params.Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return q, domain.NewValidation("invalid to date %q", raw)
		}
		q.To = &t
	}
	q.Status = params.Get("status")

	if raw := params.Get("member_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, domain.NewValidation("invalid member_id %q", raw)
		}
		q.MemberID = id
	}
	if raw := params.Get("group_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, domain.NewValidation("invalid group_id %q", raw)
		}
		q.GroupID = id
	}
	if raw := params.Get("membership_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, domain.NewValidation("invalid membership_id %q", raw)
		}
		q.MembershipID = id
	}
	return q, nil
}
