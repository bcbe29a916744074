package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/service"
)

func TestMemberService_RegisterMember(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewMemberService(tr.bundle())

		member := &domain.Member{FirstName: "Thandi", LastName: "Dlamini", NationalID: "8001015009087"}
		tr.members.On("GetByNationalID", ctx, "8001015009087").
			Return(nil, domain.NewNotFound("member not found"))
		tr.members.On("Create", ctx, member).Return(nil)

		err := svc.RegisterMember(ctx, member)
		assert.NoError(t, err)
		assert.Equal(t, domain.MemberStatusActive, member.Status)
		tr.members.AssertExpectations(t)
	})

	t.Run("DuplicateNationalID", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewMemberService(tr.bundle())

		tr.members.On("GetByNationalID", ctx, "8001015009087").
			Return(&domain.Member{ID: 1, NationalID: "8001015009087"}, nil)

		err := svc.RegisterMember(ctx, &domain.Member{FirstName: "Thandi", NationalID: "8001015009087"})
		assert.True(t, domain.IsKind(err, domain.KindConflict))
		tr.members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingFields", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewMemberService(tr.bundle())

		err := svc.RegisterMember(ctx, &domain.Member{NationalID: "8001015009087"})
		assert.True(t, domain.IsKind(err, domain.KindValidation))

		err = svc.RegisterMember(ctx, &domain.Member{FirstName: "Thandi"})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestMemberService_UpdateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownMember", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewMemberService(tr.bundle())

		tr.members.On("GetByID", ctx, int64(99)).
			Return(nil, domain.NewNotFound("member not found"))

		err := svc.UpdateMember(ctx, &domain.Member{ID: 99})
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
		tr.members.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
