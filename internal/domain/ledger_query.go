package domain

import (
	"strings"
	"time"
)

// LedgerQuery is the composable specification for ledger reads: an optional
// scope (member, group or single membership), an optional date window and an
// optional status filter. Repositories translate it internally; the grammar
// is the same for contributions, payouts and every report aggregate.
//
// Window semantics: with both bounds set the window is [From, To+1day), so a
// To of 2024-01-31 includes the whole of that day. With a single bound the
// window is half-open on the missing side. With neither bound, all time.
type LedgerQuery struct {
	MemberID     int64
	GroupID      int64
	MembershipID int64
	From         *time.Time
	To           *time.Time
	Status       string
}

// Window resolves the date bounds. The returned end is exclusive.
func (q LedgerQuery) Window() (start, end *time.Time) {
	start = q.From
	if q.To != nil {
		e := q.To.AddDate(0, 0, 1)
		end = &e
	}
	return start, end
}

// NormalizedStatus returns the whitespace-trimmed status filter, empty when
// no status filter applies.
func (q LedgerQuery) NormalizedStatus() string {
	return strings.TrimSpace(q.Status)
}

// ForMember scopes the query to one member across all groups.
func (q LedgerQuery) ForMember(memberID int64) LedgerQuery {
	q.MemberID = memberID
	return q
}

// ForGroup scopes the query to one group across all members.
func (q LedgerQuery) ForGroup(groupID int64) LedgerQuery {
	q.GroupID = groupID
	return q
}

// ForMembership scopes the query to a single membership.
func (q LedgerQuery) ForMembership(membershipID int64) LedgerQuery {
	q.MembershipID = membershipID
	return q
}
