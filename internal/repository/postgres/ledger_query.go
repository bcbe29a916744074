package postgres

import (
	"fmt"
	"strings"

	"stokvel-backend/internal/domain"
)

// ledgerWhere translates a domain.LedgerQuery into a WHERE clause over a
// ledger table aliased "l" joined to memberships aliased "m". dateColumn is
// the ledger table's event-date column. The window is inclusive of the To
// day: both bounds give [From, To+1day), a single bound a half-open range.
// Extra conditions are appended verbatim before translation.
func ledgerWhere(q domain.LedgerQuery, dateColumn string, extra ...string) (string, []any) {
	var conds []string
	var args []any
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if q.MembershipID != 0 {
		add("l.membership_id = $%d", q.MembershipID)
	}
	if q.MemberID != 0 {
		add("m.member_id = $%d", q.MemberID)
	}
	if q.GroupID != 0 {
		add("m.group_id = $%d", q.GroupID)
	}
	start, end := q.Window()
	if start != nil {
		add("l."+dateColumn+" >= $%d", *start)
	}
	if end != nil {
		add("l."+dateColumn+" < $%d", *end)
	}
	if status := q.NormalizedStatus(); status != "" {
		add("l.status = $%d", status)
	}
	conds = append(conds, extra...)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
