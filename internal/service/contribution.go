package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
	"stokvel-backend/internal/utils"
)

type contributionService struct {
	repos repository.Repositories
}

func NewContributionService(repos repository.Repositories) ContributionService {
	return &contributionService{repos: repos}
}

// RecordContribution validates the payment event against the group schedule
// and persists it. The penalty is the group's flat penalty amount when the
// transaction date falls past the period due date and deferrals are not
// allowed; it is never prorated by days late. The total is always recomputed
// from amount plus penalty.
func (s *contributionService) RecordContribution(ctx context.Context, in RecordContributionInput) (*domain.Contribution, error) {
	if in.AmountCents <= 0 {
		return nil, domain.NewValidation("contribution amount must be positive")
	}

	membership, err := s.repos.Memberships.GetByID(ctx, in.MembershipID)
	if err != nil {
		return nil, err
	}
	group, err := s.repos.Groups.GetByID(ctx, membership.GroupID)
	if err != nil {
		return nil, err
	}
	if group.Status != domain.GroupStatusActive {
		return nil, domain.NewState("group %q is not active", group.Name)
	}
	settings, err := s.repos.Groups.GetSettings(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var penalty int64
	dueDate := utils.DueDate(group.Frequency, group.StartDate, date, settings.PenaltyGraceDays)
	if date.After(dueDate) && !settings.AllowDeferrals {
		penalty = settings.PenaltyCents
	}

	reference := in.Reference
	if reference == "" {
		reference = uuid.New().String()
	}

	contribution := &domain.Contribution{
		MembershipID:    membership.ID,
		PaymentMethod:   in.PaymentMethod,
		AmountCents:     in.AmountCents,
		PenaltyCents:    penalty,
		TotalCents:      in.AmountCents + penalty,
		TransactionDate: date,
		Reference:       reference,
		ProofRef:        in.ProofRef,
		Status:          domain.PaymentStatusPending,
		CreatedBy:       in.CreatedBy,
		CreatedOn:       time.Now().UTC(),
	}
	if err := s.repos.Contributions.Create(ctx, contribution); err != nil {
		return nil, err
	}
	return contribution, nil
}

func (s *contributionService) ConfirmContribution(ctx context.Context, id int64, status domain.PaymentStatus) error {
	if status != domain.PaymentStatusSuccess && status != domain.PaymentStatusFail {
		return domain.NewValidation("confirmation status must be SUCCESS or FAIL")
	}
	contribution, err := s.repos.Contributions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contribution.Status.Terminal() {
		return domain.NewState("contribution is already %s", contribution.Status)
	}
	return s.repos.Contributions.UpdateStatus(ctx, id, status)
}

func (s *contributionService) ListContributions(ctx context.Context, q domain.LedgerQuery) ([]domain.Contribution, error) {
	return s.repos.Contributions.List(ctx, q)
}

func (s *contributionService) TotalContributions(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	return s.repos.Contributions.Sum(ctx, q)
}

func (s *contributionService) MissedPaymentCount(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	return s.repos.Contributions.CountMissed(ctx, q)
}

func (s *contributionService) PenaltyCount(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	return s.repos.Contributions.CountPenalties(ctx, q)
}
