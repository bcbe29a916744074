package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/service"
)

func TestPayoutService_RecordPayout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		tr.memberships.On("GetByID", ctx, int64(11)).
			Return(&domain.Membership{ID: 11, MemberID: 7, GroupID: 3}, nil)
		tr.payouts.On("Create", ctx, mock.MatchedBy(func(p *domain.Payout) bool {
			return p.MembershipID == 11 && p.Status == domain.PaymentStatusSuccess && p.Reference != ""
		})).Return(nil)

		p, err := svc.RecordPayout(ctx, service.RecordPayoutInput{
			GroupID:      3,
			MembershipID: 11,
			AmountCents:  400000,
			CreatedBy:    1,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(400000), p.AmountCents)
		assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		_, err := svc.RecordPayout(ctx, service.RecordPayoutInput{GroupID: 3, MembershipID: 11})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
		tr.payouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MembershipOutsideGroup", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		tr.memberships.On("GetByID", ctx, int64(11)).
			Return(&domain.Membership{ID: 11, MemberID: 7, GroupID: 99}, nil)

		_, err := svc.RecordPayout(ctx, service.RecordPayoutInput{
			GroupID:      3,
			MembershipID: 11,
			AmountCents:  400000,
		})
		assert.True(t, domain.IsKind(err, domain.KindConflict))
		tr.payouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPayoutService_AdvanceCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Increments", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		tr.groups.On("GetByIDForUpdate", ctx, int64(3)).
			Return(&domain.Group{ID: 3, Name: "Sunrise", Duration: 4, Cycles: 3}, nil)
		tr.groups.On("SetCycles", ctx, int64(3), int32(4)).Return(nil)

		group, err := svc.AdvanceCycle(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int32(4), group.Cycles)
		tr.groups.AssertExpectations(t)
	})

	t.Run("CompletedRotationCannotAdvance", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		tr.groups.On("GetByIDForUpdate", ctx, int64(3)).
			Return(&domain.Group{ID: 3, Name: "Sunrise", Duration: 4, Cycles: 4}, nil)

		_, err := svc.AdvanceCycle(ctx, 3)
		assert.True(t, domain.IsKind(err, domain.KindState))
		tr.groups.AssertNotCalled(t, "SetCycles", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPayoutService_NextRecipient(t *testing.T) {
	ctx := context.Background()

	memberships := []domain.Membership{
		{ID: 21, MemberID: 1, GroupID: 3},
		{ID: 22, MemberID: 2, GroupID: 3},
		{ID: 23, MemberID: 3, GroupID: 3},
	}

	t.Run("RotationFollowsCreationOrder", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		tr.groups.On("GetByID", ctx, int64(3)).
			Return(&domain.Group{ID: 3, Cycles: 1}, nil)
		tr.memberships.On("ListByGroup", ctx, int64(3)).Return(memberships, nil)

		next, err := svc.NextRecipient(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(22), next.ID)
	})

	t.Run("WrapsAroundAfterFullRotation", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		tr.groups.On("GetByID", ctx, int64(3)).
			Return(&domain.Group{ID: 3, Cycles: 3}, nil)
		tr.memberships.On("ListByGroup", ctx, int64(3)).Return(memberships, nil)

		next, err := svc.NextRecipient(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(21), next.ID)
	})

	t.Run("EmptyGroup", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewPayoutService(tr.bundle(), tr.uow())

		tr.groups.On("GetByID", ctx, int64(3)).
			Return(&domain.Group{ID: 3, Name: "Sunrise"}, nil)
		tr.memberships.On("ListByGroup", ctx, int64(3)).Return([]domain.Membership{}, nil)

		_, err := svc.NextRecipient(ctx, 3)
		assert.True(t, domain.IsKind(err, domain.KindState))
	})
}
