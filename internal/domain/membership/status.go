package membership

import "time"

// Membership states derived from the subscription end date.
const (
	StatusNoEndDate    = "no_end_date"
	StatusExpired      = "expired"
	StatusExpiringSoon = "expiring_soon"
	StatusActive       = "active"
)

// ExpiringSoonWindowDays is the length of the warning window before expiry.
const ExpiringSoonWindowDays = 7

// Evaluation is the derived view of a subscription at a given civil date.
type Evaluation struct {
	Status        string
	DaysRemaining *int
}

// Evaluate classifies a subscription by its end date relative to today.
// Both dates are compared as civil dates; an end date equal to today counts
// as the last covered day, so it falls in the warning window rather than
// expired. A nil end date yields StatusNoEndDate with no day count.
func Evaluate(endDate *time.Time, today time.Time) Evaluation {
	if endDate == nil {
		return Evaluation{Status: StatusNoEndDate}
	}

	end := truncateToDay(*endDate)
	now := truncateToDay(today)
	days := int(end.Sub(now).Hours() / 24)

	ev := Evaluation{DaysRemaining: &days}
	switch {
	case days < 0:
		ev.Status = StatusExpired
	case days <= ExpiringSoonWindowDays:
		ev.Status = StatusExpiringSoon
	default:
		ev.Status = StatusActive
	}
	return ev
}

// SortPriority orders statuses for reporting: open-ended subscriptions
// first, then expired, expiring soon and active.
func SortPriority(status string) int {
	switch status {
	case StatusNoEndDate:
		return 0
	case StatusExpired:
		return 1
	case StatusExpiringSoon:
		return 2
	default:
		return 3
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
