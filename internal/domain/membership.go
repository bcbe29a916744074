package domain

import "time"

type MembershipRole string

const (
	MembershipRoleOwner   MembershipRole = "OWNER"
	MembershipRoleRegular MembershipRole = "REGULAR"
)

// Membership is the durable member-group join record. A member holds at most
// one membership per group.
type Membership struct {
	ID        int64          `json:"id"`
	MemberID  int64          `json:"member_id"`
	GroupID   int64          `json:"group_id"`
	Role      MembershipRole `json:"role"`
	CreatedOn time.Time      `json:"created_on"`
}
