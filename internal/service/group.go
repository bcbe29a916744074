package service

import (
	"context"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type groupService struct {
	repos repository.Repositories
	uow   repository.UnitOfWork
}

func NewGroupService(repos repository.Repositories, uow repository.UnitOfWork) GroupService {
	return &groupService{repos: repos, uow: uow}
}

func validGroupFrequency(f domain.Frequency) bool {
	switch f {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly, domain.FrequencyAnnual:
		return true
	}
	return false
}

func (s *groupService) CreateGroup(ctx context.Context, creatorID int64, group *domain.Group, settings *domain.GroupSettings) error {
	if group.Name == "" {
		return domain.NewValidation("group name is required")
	}
	if group.ContributionCents <= 0 {
		return domain.NewValidation("contribution amount must be positive")
	}
	if !validGroupFrequency(group.Frequency) {
		return domain.NewValidation("unknown frequency %q", group.Frequency)
	}
	if group.Duration <= 0 {
		return domain.NewValidation("duration must be positive")
	}
	if settings == nil {
		return domain.NewValidation("group settings are required")
	}
	if settings.PenaltyCents < 0 || settings.PenaltyGraceDays < 0 {
		return domain.NewValidation("penalty settings must not be negative")
	}

	if _, err := s.repos.Members.GetByID(ctx, creatorID); err != nil {
		return err
	}

	// Duplicate names are rejected before any write happens.
	existing, err := s.repos.Groups.GetByName(ctx, group.Name)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return err
	}
	if existing != nil {
		return domain.NewConflict("group name %q is already taken", group.Name)
	}

	group.Cycles = 0
	if group.Status == "" {
		group.Status = domain.GroupStatusActive
	}

	return s.uow.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Groups.Create(ctx, group); err != nil {
			return err
		}
		settings.GroupID = group.ID
		if err := r.Groups.CreateSettings(ctx, settings); err != nil {
			return err
		}
		owner := &domain.Membership{
			MemberID: creatorID,
			GroupID:  group.ID,
			Role:     domain.MembershipRoleOwner,
		}
		return r.Memberships.Create(ctx, owner)
	})
}

func (s *groupService) GetGroup(ctx context.Context, id int64) (*domain.Group, *domain.GroupSettings, error) {
	group, err := s.repos.Groups.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.repos.Groups.GetSettings(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return group, settings, nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.repos.Groups.List(ctx)
}

func (s *groupService) UpdateGroup(ctx context.Context, actor domain.Identity, group *domain.Group) error {
	if !actor.IsOwner() {
		return domain.NewAuthorization("only a group owner may update the group")
	}
	current, err := s.repos.Groups.GetByID(ctx, group.ID)
	if err != nil {
		return err
	}
	if group.Name != current.Name {
		existing, err := s.repos.Groups.GetByName(ctx, group.Name)
		if err != nil && !domain.IsKind(err, domain.KindNotFound) {
			return err
		}
		if existing != nil {
			return domain.NewConflict("group name %q is already taken", group.Name)
		}
	}
	return s.repos.Groups.Update(ctx, group)
}

func (s *groupService) UpdateSettings(ctx context.Context, actor domain.Identity, settings *domain.GroupSettings) error {
	if !actor.IsOwner() {
		return domain.NewAuthorization("only a group owner may update group settings")
	}
	if settings.PenaltyCents < 0 || settings.PenaltyGraceDays < 0 {
		return domain.NewValidation("penalty settings must not be negative")
	}
	if _, err := s.repos.Groups.GetSettings(ctx, settings.GroupID); err != nil {
		return err
	}
	return s.repos.Groups.UpdateSettings(ctx, settings)
}
