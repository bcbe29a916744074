package utils

import (
	"time"

	"stokvel-backend/internal/domain"
)

// IntervalDays returns the nominal number of days in one rotation period of
// the given frequency. Monthly and annual intervals use fixed nominal
// lengths; period boundaries themselves are computed calendar-accurately by
// PeriodStart.
func IntervalDays(f domain.Frequency) int {
	switch f {
	case domain.FrequencyDaily:
		return 1
	case domain.FrequencyWeekly:
		return 7
	case domain.FrequencyMonthly:
		return 30
	case domain.FrequencyAnnual:
		return 365
	default:
		return 30
	}
}

// nextBoundary steps one period forward from t, calendar-accurate for
// monthly and annual frequencies.
func nextBoundary(f domain.Frequency, t time.Time) time.Time {
	switch f {
	case domain.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case domain.FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case domain.FrequencyAnnual:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// PeriodStart returns the start of the period containing at, walking period
// boundaries forward from the group start date. When at precedes the start
// date the start date itself is returned.
func PeriodStart(f domain.Frequency, startDate, at time.Time) time.Time {
	current := startDate
	for {
		next := nextBoundary(f, current)
		if next.After(at) {
			return current
		}
		current = next
	}
}

// DueDate is the last day a contribution for the period containing at can be
// made without penalty: the period start plus the grace days.
func DueDate(f domain.Frequency, startDate, at time.Time, graceDays int32) time.Time {
	return PeriodStart(f, startDate, at).AddDate(0, 0, int(graceDays))
}

// NextPayoutDate derives the next payout date from now; it is never
// persisted.
func NextPayoutDate(f domain.Frequency, now time.Time) time.Time {
	return now.AddDate(0, 0, IntervalDays(f))
}
