package domain

// Identity is the per-call authorization context supplied by the auth
// collaborator. The core never reads ambient request state; every role-scoped
// operation receives one of these explicitly.
type Identity struct {
	MemberID int64          `json:"member_id"`
	Role     MembershipRole `json:"role"`
}

// IsOwner reports whether the caller acts with group-owner authority.
func (i Identity) IsOwner() bool {
	return i.Role == MembershipRoleOwner
}
