package domain

import "time"

// Payout is a rotational disbursement to the membership determined by the
// group's rotation order. Recorded by an owner action; recording a payout
// never advances the group cycle counter by itself.
type Payout struct {
	ID            int64         `json:"id"`
	MembershipID  int64         `json:"membership_id"`
	PaymentMethod string        `json:"payment_method"`
	AmountCents   int64         `json:"amount_cents"`
	PayoutDate    time.Time     `json:"payout_date"`
	Reference     string        `json:"reference"`
	ProofRef      string        `json:"proof_ref,omitempty"`
	Status        PaymentStatus `json:"status"`
	CreatedBy     int64         `json:"created_by"`
	CreatedOn     time.Time     `json:"created_on"`
}
