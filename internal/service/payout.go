package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
	"stokvel-backend/internal/utils"
)

type payoutService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
}

func NewPayoutService(repos repository.Repositories, uow repository.UnitOfWork) PayoutService {
	return &payoutService{repos: repos, uow: uow}
}

// RecordPayout persists a disbursement to a membership of the group. It
// never touches the cycle counter; AdvanceCycle is a separate, explicit
// operation. Payouts and contributions are independent ledgers with no
// cross-validation between their running totals.
func (s *payoutService) RecordPayout(ctx context.Context, in RecordPayoutInput) (*domain.Payout, error) {
	if in.AmountCents <= 0 {
		return nil, domain.NewValidation("payout amount must be positive")
	}

	membership, err := s.repos.Memberships.GetByID(ctx, in.MembershipID)
	if err != nil {
		return nil, err
	}
	if membership.GroupID != in.GroupID {
		return nil, domain.NewConflict("membership does not belong to this group")
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	reference := in.Reference
	if reference == "" {
		reference = uuid.New().String()
	}

	payout := &domain.Payout{
		MembershipID:  membership.ID,
		PaymentMethod: in.PaymentMethod,
		AmountCents:   in.AmountCents,
		PayoutDate:    date,
		Reference:     reference,
		ProofRef:      in.ProofRef,
		Status:        domain.PaymentStatusSuccess,
		CreatedBy:     in.CreatedBy,
		CreatedOn:     time.Now().UTC(),
	}
	if err := s.repos.Payouts.Create(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// AdvanceCycle increments the cycle counter under the group row lock. The
// counter is clamped at the group duration: a completed rotation cannot
// advance further.
func (s *payoutService) AdvanceCycle(ctx context.Context, groupID int64) (*domain.Group, error) {
	var advanced *domain.Group

	err := s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		group, err := r.Groups.GetByIDForUpdate(ctx, groupID)
		if err != nil {
			return err
		}
		if group.Duration > 0 && group.Cycles >= group.Duration {
			return domain.NewState("group %q has completed its rotation", group.Name)
		}
		group.Cycles++
		if err := r.Groups.SetCycles(ctx, group.ID, group.Cycles); err != nil {
			return err
		}
		advanced = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return advanced, nil
}

func (s *payoutService) NextPayoutDate(ctx context.Context, groupID int64) (time.Time, error) {
	group, err := s.repos.Groups.GetByID(ctx, groupID)
	if err != nil {
		return time.Time{}, err
	}
	return utils.NextPayoutDate(group.Frequency, time.Now().UTC()), nil
}

func (s *payoutService) NextRecipient(ctx context.Context, groupID int64) (*domain.Membership, error) {
	group, err := s.repos.Groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.repos.Memberships.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, domain.NewState("group %q has no members", group.Name)
	}
	next := memberships[int(group.Cycles)%len(memberships)]
	return &next, nil
}
