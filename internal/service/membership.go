package service

import (
	"context"
	"time"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/logger"
	"stokvel-backend/internal/repository"
)

type membershipService struct {
	repos    repository.Repositories
	uow      repository.UnitOfWork
	notifier Notifier
}

func NewMembershipService(repos repository.Repositories, uow repository.UnitOfWork, notifier Notifier) MembershipService {
	return &membershipService{repos: repos, uow: uow, notifier: notifier}
}

func (s *membershipService) SubmitJoinRequest(ctx context.Context, memberID, groupID int64) (*domain.JoinRequest, error) {
	if _, err := s.repos.Members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	if _, err := s.repos.Groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	membership, err := s.repos.Memberships.GetByMemberAndGroup(ctx, memberID, groupID)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	if membership != nil {
		return nil, domain.NewConflict("member already belongs to this group")
	}

	pending, err := s.repos.JoinRequests.GetPending(ctx, memberID, groupID)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	if pending != nil {
		return nil, domain.NewConflict("a pending join request already exists for this group")
	}

	req := &domain.JoinRequest{
		MemberID:    memberID,
		GroupID:     groupID,
		Status:      domain.RequestStatusPending,
		RequestedOn: time.Now().UTC(),
	}
	if err := s.repos.JoinRequests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptJoinRequest transitions the request to ACCEPTED and creates the
// regular membership in the same transaction. The group row is locked so
// concurrent accepts cannot push a group past its member limit, and the
// status update only applies to a still-pending row: a decision that lost
// the race fails with a state error and its membership write rolls back.
func (s *membershipService) AcceptJoinRequest(ctx context.Context, requestID int64) error {
	var accepted *domain.JoinRequest

	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		req, err := r.JoinRequests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.RequestStatusPending {
			return domain.NewState("join request is %s and cannot be accepted", req.Status)
		}

		group, err := r.Groups.GetByIDForUpdate(ctx, req.GroupID)
		if err != nil {
			return err
		}
		if group.MemberLimit > 0 {
			count, err := r.Memberships.CountByGroup(ctx, req.GroupID)
			if err != nil {
				return err
			}
			if count >= group.MemberLimit {
				return domain.NewConflict("group %q is at its member limit", group.Name)
			}
		}

		membership := &domain.Membership{
			MemberID: req.MemberID,
			GroupID:  req.GroupID,
			Role:     domain.MembershipRoleRegular,
		}
		if err := r.Memberships.Create(ctx, membership); err != nil {
			return err
		}
		if err := r.JoinRequests.UpdateStatus(ctx, req.ID, domain.RequestStatusAccepted); err != nil {
			return err
		}
		accepted = req
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyJoinDecision(ctx, accepted, true)
	return nil
}

func (s *membershipService) RejectJoinRequest(ctx context.Context, requestID int64) error {
	req, err := s.repos.JoinRequests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestStatusPending {
		return domain.NewState("join request is %s and cannot be rejected", req.Status)
	}
	if err := s.repos.JoinRequests.UpdateStatus(ctx, req.ID, domain.RequestStatusRejected); err != nil {
		return err
	}

	s.notifyJoinDecision(ctx, req, false)
	return nil
}

func (s *membershipService) DeleteJoinRequest(ctx context.Context, requestID int64) error {
	req, err := s.repos.JoinRequests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestStatusPending {
		return domain.NewState("only a pending join request can be deleted")
	}
	return s.repos.JoinRequests.Delete(ctx, req.ID)
}

func (s *membershipService) SubmitLeaveRequest(ctx context.Context, memberID, groupID int64) (*domain.LeaveRequest, error) {
	if _, err := s.repos.Memberships.GetByMemberAndGroup(ctx, memberID, groupID); err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewConflict("member does not belong to this group")
		}
		return nil, err
	}

	pending, err := s.repos.LeaveRequests.GetPending(ctx, memberID, groupID)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	if pending != nil {
		return nil, domain.NewConflict("a pending leave request already exists for this group")
	}

	req := &domain.LeaveRequest{
		MemberID:    memberID,
		GroupID:     groupID,
		Status:      domain.RequestStatusPending,
		RequestedOn: time.Now().UTC(),
	}
	if err := s.repos.LeaveRequests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveLeaveRequest transitions the request to ACCEPTED and removes the
// membership in the same transaction. The pending-only status update gives
// racing decisions the same loser-rolls-back behavior as join requests.
func (s *membershipService) ApproveLeaveRequest(ctx context.Context, requestID int64) error {
	var approved *domain.LeaveRequest

	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		req, err := r.LeaveRequests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.RequestStatusPending {
			return domain.NewState("leave request is %s and cannot be approved", req.Status)
		}

		membership, err := r.Memberships.GetByMemberAndGroup(ctx, req.MemberID, req.GroupID)
		if err != nil {
			return err
		}
		if err := r.Memberships.Delete(ctx, membership.ID); err != nil {
			return err
		}
		if err := r.LeaveRequests.UpdateStatus(ctx, req.ID, domain.RequestStatusAccepted); err != nil {
			return err
		}
		approved = req
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyLeaveDecision(ctx, approved, true)
	return nil
}

func (s *membershipService) RejectLeaveRequest(ctx context.Context, requestID int64) error {
	req, err := s.repos.LeaveRequests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestStatusPending {
		return domain.NewState("leave request is %s and cannot be rejected", req.Status)
	}
	if err := s.repos.LeaveRequests.UpdateStatus(ctx, req.ID, domain.RequestStatusRejected); err != nil {
		return err
	}

	s.notifyLeaveDecision(ctx, req, false)
	return nil
}

func (s *membershipService) DeleteLeaveRequest(ctx context.Context, requestID int64) error {
	req, err := s.repos.LeaveRequests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestStatusPending {
		return domain.NewState("only a pending leave request can be deleted")
	}
	return s.repos.LeaveRequests.Delete(ctx, req.ID)
}

func (s *membershipService) ListJoinRequests(ctx context.Context, viewer domain.Identity, groupID int64, status domain.RequestStatus) ([]domain.JoinRequest, error) {
	if viewer.IsOwner() {
		return s.repos.JoinRequests.ListByGroup(ctx, groupID, status)
	}
	// Regular members only ever see their own requests.
	return s.repos.JoinRequests.ListByGroupAndMember(ctx, groupID, viewer.MemberID, status)
}

func (s *membershipService) ListLeaveRequests(ctx context.Context, viewer domain.Identity, groupID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error) {
	if viewer.IsOwner() {
		return s.repos.LeaveRequests.ListByGroup(ctx, groupID, status)
	}
	return s.repos.LeaveRequests.ListByGroupAndMember(ctx, groupID, viewer.MemberID, status)
}

// Decision mail is best-effort; failures are logged and never surfaced.
func (s *membershipService) notifyJoinDecision(ctx context.Context, req *domain.JoinRequest, accepted bool) {
	if s.notifier == nil || req == nil {
		return
	}
	member, err := s.repos.Members.GetByID(ctx, req.MemberID)
	if err != nil {
		logger.Warn("Failed to load member for join decision mail", "member_id", req.MemberID, "error", err)
		return
	}
	group, err := s.repos.Groups.GetByID(ctx, req.GroupID)
	if err != nil {
		logger.Warn("Failed to load group for join decision mail", "group_id", req.GroupID, "error", err)
		return
	}
	if err := s.notifier.JoinRequestDecided(ctx, member, group.Name, accepted); err != nil {
		logger.Warn("Failed to send join decision mail", "member_id", member.ID, "group_id", group.ID, "error", err)
	}
}

func (s *membershipService) notifyLeaveDecision(ctx context.Context, req *domain.LeaveRequest, accepted bool) {
	if s.notifier == nil || req == nil {
		return
	}
	member, err := s.repos.Members.GetByID(ctx, req.MemberID)
	if err != nil {
		logger.Warn("Failed to load member for leave decision mail", "member_id", req.MemberID, "error", err)
		return
	}
	group, err := s.repos.Groups.GetByID(ctx, req.GroupID)
	if err != nil {
		logger.Warn("Failed to load group for leave decision mail", "group_id", req.GroupID, "error", err)
		return
	}
	if err := s.notifier.LeaveRequestDecided(ctx, member, group.Name, accepted); err != nil {
		logger.Warn("Failed to send leave decision mail", "member_id", member.ID, "group_id", group.ID, "error", err)
	}
}
