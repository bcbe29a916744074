package domain

// SeriesPoint is one day of contribution and payout sums for graphing.
type SeriesPoint struct {
	Date              string `json:"date"` // yyyy-mm-dd
	ContributionCents int64  `json:"contribution_cents"`
	PayoutCents       int64  `json:"payout_cents"`
}

// MemberReport is the read-side summary for one member over a ledger query
// window.
type MemberReport struct {
	Member         Member         `json:"member"`
	GroupSummaries []string       `json:"group_summaries"` // "<name> - [Cycle (<cycles>/<duration>)]"
	Contributions  []Contribution `json:"contributions"`
	TotalPaidCents int64          `json:"total_paid_cents"`
	MissedPayments int64          `json:"missed_payments"`
	Penalties      int64          `json:"penalties"`
	Series         []SeriesPoint  `json:"series"`
}

// GroupMemberSummary is one member's row inside a GroupReport.
type GroupMemberSummary struct {
	MemberID       int64        `json:"member_id"`
	Name           string       `json:"name"`
	Status         MemberStatus `json:"status"`
	PaidCents      int64        `json:"paid_cents"`
	MissedPayments int64        `json:"missed_payments"`
	Penalties      int64        `json:"penalties"`
	PayoutCents    int64        `json:"payout_cents"`
}

// GroupReport is the read-side summary for one group over a ledger query
// window.
type GroupReport struct {
	Group                  Group                `json:"group"`
	DateRange              string               `json:"date_range"`
	CycleSummary           string               `json:"cycle_summary"`
	MemberCount            int32                `json:"member_count"`
	TotalContributionCents int64                `json:"total_contribution_cents"`
	PerMemberCents         int64                `json:"per_member_cents"`
	Members                []GroupMemberSummary `json:"members"`
}
