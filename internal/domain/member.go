package domain

import "time"

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

type Member struct {
	ID           int64        `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	NationalID   string       `json:"national_id"` // unique across members
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	RegisteredOn time.Time    `json:"registered_on"`
	Status       MemberStatus `json:"status"`
}

// FullName joins the legal name fields for display and notifications.
func (m *Member) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
