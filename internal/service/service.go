package service

import (
	"context"
	"time"

	"stokvel-backend/internal/domain"
)

type GroupService interface {
	// CreateGroup persists the group, its settings and an owner membership
	// for the creator as one atomic unit. A duplicate name fails before any
	// write occurs.
	CreateGroup(ctx context.Context, creatorID int64, group *domain.Group, settings *domain.GroupSettings) error
	GetGroup(ctx context.Context, id int64) (*domain.Group, *domain.GroupSettings, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	UpdateGroup(ctx context.Context, actor domain.Identity, group *domain.Group) error
	UpdateSettings(ctx context.Context, actor domain.Identity, settings *domain.GroupSettings) error
}

type MemberService interface {
	RegisterMember(ctx context.Context, member *domain.Member) error
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
	UpdateMember(ctx context.Context, member *domain.Member) error
}

// MembershipService is the workflow engine for join and leave requests. Both
// request kinds share one state machine: PENDING is the only deletable state
// and the only state further transitions leave from.
type MembershipService interface {
	SubmitJoinRequest(ctx context.Context, memberID, groupID int64) (*domain.JoinRequest, error)
	AcceptJoinRequest(ctx context.Context, requestID int64) error
	RejectJoinRequest(ctx context.Context, requestID int64) error
	DeleteJoinRequest(ctx context.Context, requestID int64) error

	SubmitLeaveRequest(ctx context.Context, memberID, groupID int64) (*domain.LeaveRequest, error)
	ApproveLeaveRequest(ctx context.Context, requestID int64) error
	RejectLeaveRequest(ctx context.Context, requestID int64) error
	DeleteLeaveRequest(ctx context.Context, requestID int64) error

	// List operations restrict non-owner viewers to their own requests.
	ListJoinRequests(ctx context.Context, viewer domain.Identity, groupID int64, status domain.RequestStatus) ([]domain.JoinRequest, error)
	ListLeaveRequests(ctx context.Context, viewer domain.Identity, groupID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error)
}

// RecordContributionInput carries one payment event into the ledger.
type RecordContributionInput struct {
	MembershipID  int64
	AmountCents   int64
	PaymentMethod string
	Reference     string
	Date          time.Time
	ProofRef      string
	CreatedBy     int64
}

type ContributionService interface {
	RecordContribution(ctx context.Context, in RecordContributionInput) (*domain.Contribution, error)
	// ConfirmContribution is the external confirmation callback moving a
	// pending contribution to SUCCESS or FAIL.
	ConfirmContribution(ctx context.Context, id int64, status domain.PaymentStatus) error
	ListContributions(ctx context.Context, q domain.LedgerQuery) ([]domain.Contribution, error)
	TotalContributions(ctx context.Context, q domain.LedgerQuery) (int64, error)
	MissedPaymentCount(ctx context.Context, q domain.LedgerQuery) (int64, error)
	PenaltyCount(ctx context.Context, q domain.LedgerQuery) (int64, error)
}

// RecordPayoutInput carries one rotational disbursement.
type RecordPayoutInput struct {
	GroupID       int64
	MembershipID  int64
	AmountCents   int64
	PaymentMethod string
	Reference     string
	Date          time.Time
	ProofRef      string
	CreatedBy     int64
}

type PayoutService interface {
	RecordPayout(ctx context.Context, in RecordPayoutInput) (*domain.Payout, error)
	// AdvanceCycle increments the group cycle counter by one; a completed
	// rotation (cycles == duration) cannot advance further.
	AdvanceCycle(ctx context.Context, groupID int64) (*domain.Group, error)
	NextPayoutDate(ctx context.Context, groupID int64) (time.Time, error)
	// NextRecipient resolves the membership next due a payout: memberships
	// in creation order, indexed by cycles modulo member count.
	NextRecipient(ctx context.Context, groupID int64) (*domain.Membership, error)
}

type ReportService interface {
	MemberReport(ctx context.Context, memberID int64, q domain.LedgerQuery) (*domain.MemberReport, error)
	GroupReport(ctx context.Context, groupID int64, q domain.LedgerQuery) (*domain.GroupReport, error)
}

// Notifier delivers workflow decision mail. Implementations must be safe to
// fail: a delivery error never fails the workflow operation that caused it.
type Notifier interface {
	JoinRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error
	LeaveRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error
}
