package repository

import (
	"context"
	"time"

	"stokvel-backend/internal/domain"
)

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	CreateSettings(ctx context.Context, settings *domain.GroupSettings) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	// GetByIDForUpdate locks the group row for the remainder of the
	// enclosing transaction. Conflicting writers (member-limit checks,
	// cycle advancement) serialize on this lock.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Group, error)
	GetByName(ctx context.Context, name string) (*domain.Group, error)
	GetSettings(ctx context.Context, groupID int64) (*domain.GroupSettings, error)
	List(ctx context.Context) ([]domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error
	UpdateSettings(ctx context.Context, settings *domain.GroupSettings) error
	SetCycles(ctx context.Context, groupID int64, cycles int32) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
}

type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	GetByID(ctx context.Context, id int64) (*domain.Membership, error)
	GetByMemberAndGroup(ctx context.Context, memberID, groupID int64) (*domain.Membership, error)
	// ListByGroup returns memberships in creation order; rotation order
	// derives from it.
	ListByGroup(ctx context.Context, groupID int64) ([]domain.Membership, error)
	ListByMember(ctx context.Context, memberID int64) ([]domain.Membership, error)
	CountByGroup(ctx context.Context, groupID int64) (int32, error)
	Delete(ctx context.Context, id int64) error
}

type JoinRequestRepository interface {
	Create(ctx context.Context, req *domain.JoinRequest) error
	GetByID(ctx context.Context, id int64) (*domain.JoinRequest, error)
	GetPending(ctx context.Context, memberID, groupID int64) (*domain.JoinRequest, error)
	// UpdateStatus only transitions a PENDING request; when the row is no
	// longer pending it fails with a state error so concurrent decisions
	// cannot both apply.
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error
	Delete(ctx context.Context, id int64) error
	ListByGroup(ctx context.Context, groupID int64, status domain.RequestStatus) ([]domain.JoinRequest, error)
	ListByGroupAndMember(ctx context.Context, groupID, memberID int64, status domain.RequestStatus) ([]domain.JoinRequest, error)
	DeleteStalePending(ctx context.Context, before time.Time) (int64, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, req *domain.LeaveRequest) error
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	GetPending(ctx context.Context, memberID, groupID int64) (*domain.LeaveRequest, error)
	// UpdateStatus only transitions a PENDING request, same contract as
	// JoinRequestRepository.UpdateStatus.
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error
	Delete(ctx context.Context, id int64) error
	ListByGroup(ctx context.Context, groupID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error)
	ListByGroupAndMember(ctx context.Context, groupID, memberID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error)
	DeleteStalePending(ctx context.Context, before time.Time) (int64, error)
}

type ContributionRepository interface {
	Create(ctx context.Context, c *domain.Contribution) error
	GetByID(ctx context.Context, id int64) (*domain.Contribution, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	List(ctx context.Context, q domain.LedgerQuery) ([]domain.Contribution, error)
	// Sum totals AmountCents over the query window. With no status filter
	// only SUCCESS rows count.
	Sum(ctx context.Context, q domain.LedgerQuery) (int64, error)
	// CountMissed counts rows with a positive penalty, or rows matching the
	// exact status when the query carries one.
	CountMissed(ctx context.Context, q domain.LedgerQuery) (int64, error)
	// CountPenalties counts rows with a positive penalty under the full
	// query grammar, status filter included.
	CountPenalties(ctx context.Context, q domain.LedgerQuery) (int64, error)
}

type PayoutRepository interface {
	Create(ctx context.Context, p *domain.Payout) error
	GetByID(ctx context.Context, id int64) (*domain.Payout, error)
	List(ctx context.Context, q domain.LedgerQuery) ([]domain.Payout, error)
	Sum(ctx context.Context, q domain.LedgerQuery) (int64, error)
}

// Repositories bundles every aggregate repository. A unit of work rebinds the
// whole bundle onto one transaction.
type Repositories struct {
	Groups        GroupRepository
	Members       MemberRepository
	Memberships   MembershipRepository
	JoinRequests  JoinRequestRepository
	LeaveRequests LeaveRequestRepository
	Contributions ContributionRepository
	Payouts       PayoutRepository
}

// UnitOfWork is the single transactional primitive the core relies on. The
// callback runs against repositories bound to one transaction; a nil return
// commits, any error rolls the whole unit back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
