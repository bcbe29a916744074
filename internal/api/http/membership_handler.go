package http

import (
	"context"
	"net/http"

	"stokvel-backend/internal/domain"
)

func (s *Server) handleSubmitJoinRequest(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	identity := identityFrom(r)
	req, err := s.memberships.SubmitJoinRequest(r.Context(), identity.MemberID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"join_request": req})
}

func (s *Server) handleListJoinRequests(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	reqs, err := s.memberships.ListJoinRequests(r.Context(), identityFrom(r), groupID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"join_requests": reqs})
}

func (s *Server) handleAcceptJoinRequest(w http.ResponseWriter, r *http.Request) {
	s.adjudicate(w, r, s.memberships.AcceptJoinRequest)
}

func (s *Server) handleRejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	s.adjudicate(w, r, s.memberships.RejectJoinRequest)
}

func (s *Server) handleDeleteJoinRequest(w http.ResponseWriter, r *http.Request) {
	s.deleteRequest(w, r, s.memberships.DeleteJoinRequest)
}

func (s *Server) handleSubmitLeaveRequest(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	identity := identityFrom(r)
	req, err := s.memberships.SubmitLeaveRequest(r.Context(), identity.MemberID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"leave_request": req})
}

func (s *Server) handleListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	reqs, err := s.memberships.ListLeaveRequests(r.Context(), identityFrom(r), groupID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leave_requests": reqs})
}

func (s *Server) handleApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	s.adjudicate(w, r, s.memberships.ApproveLeaveRequest)
}

func (s *Server) handleRejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	s.adjudicate(w, r, s.memberships.RejectLeaveRequest)
}

func (s *Server) handleDeleteLeaveRequest(w http.ResponseWriter, r *http.Request) {
	s.deleteRequest(w, r, s.memberships.DeleteLeaveRequest)
}

// deleteRequest removes a pending request on behalf of its submitter; unlike
// accept/reject it is not an owner-only action.
func (s *Server) deleteRequest(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, requestID int64) error) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := op(r.Context(), requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// adjudicate runs an owner-only request decision. The ownership check is a
// gate on the web surface; the core enforces its own viewer filtering.
func (s *Server) adjudicate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, requestID int64) error) {
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if !identityFrom(r).IsOwner() {
		writeError(w, domain.NewAuthorization("only a group owner may decide requests"))
		return
	}
	if err := op(r.Context(), requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
