package service

import (
	"context"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type memberService struct {
	repos repository.Repositories
}

func NewMemberService(repos repository.Repositories) MemberService {
	return &memberService{repos: repos}
}

func (s *memberService) RegisterMember(ctx context.Context, member *domain.Member) error {
	if member.FirstName == "" && member.LastName == "" {
		return domain.NewValidation("member name is required")
	}
	if member.NationalID == "" {
		return domain.NewValidation("national identifier is required")
	}

	existing, err := s.repos.Members.GetByNationalID(ctx, member.NationalID)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return err
	}
	if existing != nil {
		return domain.NewConflict("a member with this national identifier already exists")
	}

	if member.Status == "" {
		member.Status = domain.MemberStatusActive
	}
	return s.repos.Members.Create(ctx, member)
}

func (s *memberService) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	return s.repos.Members.GetByID(ctx, id)
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.repos.Members.List(ctx)
}

func (s *memberService) UpdateMember(ctx context.Context, member *domain.Member) error {
	if _, err := s.repos.Members.GetByID(ctx, member.ID); err != nil {
		return err
	}
	return s.repos.Members.Update(ctx, member)
}
