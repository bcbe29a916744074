package service

import (
	"context"
	"fmt"
	"sort"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type reportService struct {
	repos repository.Repositories
}

func NewReportService(repos repository.Repositories) ReportService {
	return &reportService{repos: repos}
}

const reportDateLayout = "2006-01-02"

func cycleSummary(group *domain.Group) string {
	return fmt.Sprintf("%s - [Cycle (%d/%d)]", group.Name, group.Cycles, group.Duration)
}

func dateRangeLabel(q domain.LedgerQuery) string {
	switch {
	case q.From != nil && q.To != nil:
		return q.From.Format(reportDateLayout) + " - " + q.To.Format(reportDateLayout)
	case q.From != nil:
		return "from " + q.From.Format(reportDateLayout)
	case q.To != nil:
		return "until " + q.To.Format(reportDateLayout)
	default:
		return "all time"
	}
}

// MemberReport composes the member's identity, group cycle summaries,
// filtered ledger rows and aggregate figures. Aggregation is deterministic:
// sums and counts do not depend on row order, and the series is sorted by
// date.
func (s *reportService) MemberReport(ctx context.Context, memberID int64, q domain.LedgerQuery) (*domain.MemberReport, error) {
	member, err := s.repos.Members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.repos.Memberships.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var summaries []string
	for _, ms := range memberships {
		group, err := s.repos.Groups.GetByID(ctx, ms.GroupID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, cycleSummary(group))
	}

	scoped := q.ForMember(memberID)
	contributions, err := s.repos.Contributions.List(ctx, scoped)
	if err != nil {
		return nil, err
	}
	total, err := s.repos.Contributions.Sum(ctx, scoped)
	if err != nil {
		return nil, err
	}
	missed, err := s.repos.Contributions.CountMissed(ctx, scoped)
	if err != nil {
		return nil, err
	}
	penalties, err := s.repos.Contributions.CountPenalties(ctx, scoped)
	if err != nil {
		return nil, err
	}
	payouts, err := s.repos.Payouts.List(ctx, scoped)
	if err != nil {
		return nil, err
	}

	return &domain.MemberReport{
		Member:         *member,
		GroupSummaries: summaries,
		Contributions:  contributions,
		TotalPaidCents: total,
		MissedPayments: missed,
		Penalties:      penalties,
		Series:         buildSeries(contributions, payouts),
	}, nil
}

// GroupReport composes group identity, member count and per-member ledger
// summaries over the query window.
func (s *reportService) GroupReport(ctx context.Context, groupID int64, q domain.LedgerQuery) (*domain.GroupReport, error) {
	group, err := s.repos.Groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.repos.Memberships.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	total, err := s.repos.Contributions.Sum(ctx, q.ForGroup(groupID))
	if err != nil {
		return nil, err
	}

	var rows []domain.GroupMemberSummary
	for _, ms := range memberships {
		member, err := s.repos.Members.GetByID(ctx, ms.MemberID)
		if err != nil {
			return nil, err
		}
		scoped := q.ForMembership(ms.ID)
		paid, err := s.repos.Contributions.Sum(ctx, scoped)
		if err != nil {
			return nil, err
		}
		missed, err := s.repos.Contributions.CountMissed(ctx, scoped)
		if err != nil {
			return nil, err
		}
		penalties, err := s.repos.Contributions.CountPenalties(ctx, scoped)
		if err != nil {
			return nil, err
		}
		payoutTotal, err := s.repos.Payouts.Sum(ctx, scoped)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.GroupMemberSummary{
			MemberID:       member.ID,
			Name:           member.FullName(),
			Status:         member.Status,
			PaidCents:      paid,
			MissedPayments: missed,
			Penalties:      penalties,
			PayoutCents:    payoutTotal,
		})
	}

	report := &domain.GroupReport{
		Group:                  *group,
		DateRange:              dateRangeLabel(q),
		CycleSummary:           cycleSummary(group),
		MemberCount:            int32(len(memberships)),
		TotalContributionCents: total,
		Members:                rows,
	}
	if len(memberships) > 0 {
		report.PerMemberCents = total / int64(len(memberships))
	}
	return report, nil
}

// buildSeries keys contribution and payout sums by calendar day.
func buildSeries(contributions []domain.Contribution, payouts []domain.Payout) []domain.SeriesPoint {
	byDate := make(map[string]*domain.SeriesPoint)
	point := func(date string) *domain.SeriesPoint {
		p, ok := byDate[date]
		if !ok {
			p = &domain.SeriesPoint{Date: date}
			byDate[date] = p
		}
		return p
	}

	for _, c := range contributions {
		p := point(c.TransactionDate.Format(reportDateLayout))
		p.ContributionCents += c.AmountCents
	}
	for _, po := range payouts {
		p := point(po.PayoutDate.Format(reportDateLayout))
		p.PayoutCents += po.AmountCents
	}

	series := make([]domain.SeriesPoint, 0, len(byDate))
	for _, p := range byDate {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}
