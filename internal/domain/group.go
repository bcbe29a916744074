package domain

import "time"

type GroupStatus string

const (
	GroupStatusActive   GroupStatus = "ACTIVE"
	GroupStatusInactive GroupStatus = "INACTIVE"
)

type PayoutType string

const (
	PayoutTypeRotational PayoutType = "ROTATIONAL"
	PayoutTypeLumpSum    PayoutType = "LUMP_SUM"
)

// Frequency is the rotation period unit of a group.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyAnnual  Frequency = "ANNUAL"
)

type Group struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	ContributionCents int64       `json:"contribution_cents"`
	MemberLimit       int32       `json:"member_limit"`
	Currency          string      `json:"currency"`
	PayoutType        PayoutType  `json:"payout_type"`
	Frequency         Frequency   `json:"frequency"`
	Duration          int32       `json:"duration"` // total rotation periods
	StartDate         time.Time   `json:"start_date"`
	Cycles            int32       `json:"cycles"` // completed rotation periods, never exceeds Duration
	Status            GroupStatus `json:"status"`
	CreatedOn         time.Time   `json:"created_on"`
}

// GroupSettings is created atomically with its Group and shares its lifecycle.
type GroupSettings struct {
	GroupID          int64 `json:"group_id"`
	PenaltyCents     int64 `json:"penalty_cents"`
	PenaltyGraceDays int32 `json:"penalty_grace_days"`
	AllowDeferrals   bool  `json:"allow_deferrals"`
}
