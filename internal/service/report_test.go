package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/service"
)

func TestReportService_MemberReport(t *testing.T) {
	ctx := context.Background()

	t.Run("ComposesSummariesAndSeries", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewReportService(tr.bundle())

		member := &domain.Member{ID: 7, FirstName: "Thandi", LastName: "Dlamini"}
		group := &domain.Group{ID: 3, Name: "Sunrise", Cycles: 2, Duration: 12}

		jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		contributions := []domain.Contribution{
			{ID: 1, AmountCents: 100000, TransactionDate: jan15},
			{ID: 2, AmountCents: 100000, TransactionDate: jan10},
			{ID: 3, AmountCents: 50000, TransactionDate: jan10},
		}
		payouts := []domain.Payout{
			{ID: 1, AmountCents: 300000, PayoutDate: jan15},
		}

		q := domain.LedgerQuery{}
		scoped := q.ForMember(7)

		tr.members.On("GetByID", ctx, int64(7)).Return(member, nil)
		tr.memberships.On("ListByMember", ctx, int64(7)).
			Return([]domain.Membership{{ID: 11, MemberID: 7, GroupID: 3}}, nil)
		tr.groups.On("GetByID", ctx, int64(3)).Return(group, nil)
		tr.contributions.On("List", ctx, scoped).Return(contributions, nil)
		tr.contributions.On("Sum", ctx, scoped).Return(int64(250000), nil)
		tr.contributions.On("CountMissed", ctx, scoped).Return(int64(1), nil)
		tr.contributions.On("CountPenalties", ctx, scoped).Return(int64(1), nil)
		tr.payouts.On("List", ctx, scoped).Return(payouts, nil)

		report, err := svc.MemberReport(ctx, 7, q)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Sunrise - [Cycle (2/12)]"}, report.GroupSummaries)
		assert.Equal(t, int64(250000), report.TotalPaidCents)
		assert.Equal(t, int64(1), report.MissedPayments)
		assert.Len(t, report.Contributions, 3)

		// Series is keyed by calendar day, sorted ascending, with same-day
		// rows folded together.
		assert.Equal(t, []domain.SeriesPoint{
			{Date: "2024-01-10", ContributionCents: 150000},
			{Date: "2024-01-15", ContributionCents: 100000, PayoutCents: 300000},
		}, report.Series)
	})

	t.Run("UnknownMember", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewReportService(tr.bundle())

		tr.members.On("GetByID", ctx, int64(99)).
			Return(nil, domain.NewNotFound("member not found"))

		_, err := svc.MemberReport(ctx, 99, domain.LedgerQuery{})
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestReportService_GroupReport(t *testing.T) {
	ctx := context.Background()

	t.Run("PerMemberRowsAndShare", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewReportService(tr.bundle())

		group := &domain.Group{ID: 3, Name: "Sunrise", Cycles: 4, Duration: 12}
		memberships := []domain.Membership{
			{ID: 21, MemberID: 1, GroupID: 3},
			{ID: 22, MemberID: 2, GroupID: 3},
		}

		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		q := domain.LedgerQuery{From: &from, To: &to}

		tr.groups.On("GetByID", ctx, int64(3)).Return(group, nil)
		tr.memberships.On("ListByGroup", ctx, int64(3)).Return(memberships, nil)
		tr.contributions.On("Sum", ctx, q.ForGroup(3)).Return(int64(500000), nil)

		tr.members.On("GetByID", ctx, int64(1)).
			Return(&domain.Member{ID: 1, FirstName: "Thandi", LastName: "Dlamini", Status: domain.MemberStatusActive}, nil)
		tr.members.On("GetByID", ctx, int64(2)).
			Return(&domain.Member{ID: 2, FirstName: "Sipho", LastName: "Nkosi", Status: domain.MemberStatusActive}, nil)

		first := q.ForMembership(21)
		tr.contributions.On("Sum", ctx, first).Return(int64(300000), nil)
		tr.contributions.On("CountMissed", ctx, first).Return(int64(0), nil)
		tr.contributions.On("CountPenalties", ctx, first).Return(int64(0), nil)
		tr.payouts.On("Sum", ctx, first).Return(int64(500000), nil)

		second := q.ForMembership(22)
		tr.contributions.On("Sum", ctx, second).Return(int64(200000), nil)
		tr.contributions.On("CountMissed", ctx, second).Return(int64(2), nil)
		tr.contributions.On("CountPenalties", ctx, second).Return(int64(1), nil)
		tr.payouts.On("Sum", ctx, second).Return(int64(0), nil)

		report, err := svc.GroupReport(ctx, 3, q)
		assert.NoError(t, err)
		assert.Equal(t, "Sunrise - [Cycle (4/12)]", report.CycleSummary)
		assert.Equal(t, "2024-01-01 - 2024-03-31", report.DateRange)
		assert.Equal(t, int32(2), report.MemberCount)
		assert.Equal(t, int64(500000), report.TotalContributionCents)
		assert.Equal(t, int64(250000), report.PerMemberCents)

		assert.Len(t, report.Members, 2)
		assert.Equal(t, "Thandi Dlamini", report.Members[0].Name)
		assert.Equal(t, int64(300000), report.Members[0].PaidCents)
		assert.Equal(t, int64(2), report.Members[1].MissedPayments)

		// Membership rows partition the group total.
		var sum int64
		for _, row := range report.Members {
			sum += row.PaidCents
		}
		assert.Equal(t, report.TotalContributionCents, sum)
	})

	t.Run("EmptyGroupHasNoShare", func(t *testing.T) {
		tr := newTestRepos()
		svc := service.NewReportService(tr.bundle())

		group := &domain.Group{ID: 3, Name: "Sunrise"}
		tr.groups.On("GetByID", ctx, int64(3)).Return(group, nil)
		tr.memberships.On("ListByGroup", ctx, int64(3)).Return([]domain.Membership{}, nil)
		tr.contributions.On("Sum", ctx, domain.LedgerQuery{GroupID: 3}).Return(int64(0), nil)

		report, err := svc.GroupReport(ctx, 3, domain.LedgerQuery{})
		assert.NoError(t, err)
		assert.Equal(t, "all time", report.DateRange)
		assert.Equal(t, int64(0), report.PerMemberCents)
		assert.Empty(t, report.Members)
	})
}
