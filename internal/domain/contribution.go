package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFail    PaymentStatus = "FAIL"
)

// Terminal reports whether a payment status permits no further transition.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFail
}

// Contribution is one payment event against a membership. Immutable after
// creation except for the status transition driven by external confirmation.
// TotalCents is always AmountCents + PenaltyCents; it is computed at record
// time and never settable on its own.
type Contribution struct {
	ID              int64         `json:"id"`
	MembershipID    int64         `json:"membership_id"`
	PaymentMethod   string        `json:"payment_method"`
	AmountCents     int64         `json:"amount_cents"`
	PenaltyCents    int64         `json:"penalty_cents"`
	TotalCents      int64         `json:"total_cents"`
	TransactionDate time.Time     `json:"transaction_date"`
	Reference       string        `json:"reference"`
	ProofRef        string        `json:"proof_ref,omitempty"` // opaque proof-of-payment key
	Status          PaymentStatus `json:"status"`
	CreatedBy       int64         `json:"created_by"`
	CreatedOn       time.Time     `json:"created_on"`
}
