package timezone

import "time"

// The business runs in Tashkent; every civil-date comparison (check-in
// uniqueness, membership expiry) is done against this zone, not UTC.
const Name = "Asia/Tashkent"

const DateLayout = "2006-01-02"

var location *time.Location

func init() {
	loc, err := time.LoadLocation(Name)
	if err != nil {
		// UTC+5, no DST
		loc = time.FixedZone("UZT", 5*60*60)
	}
	location = loc
}

func Location() *time.Location {
	return location
}

func Now() time.Time {
	return time.Now().In(location)
}

// Today returns the current civil date at midnight in the business zone.
func Today() time.Time {
	return DateOf(Now())
}

// DateOf truncates a timestamp to its civil date in the business zone.
func DateOf(t time.Time) time.Time {
	y, m, d := t.In(location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, location)
}

// DayString formats a timestamp as its YYYY-MM-DD civil date.
func DayString(t time.Time) string {
	return t.In(location).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a civil date in the business zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, location)
}
