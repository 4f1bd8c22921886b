package maintenance

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a service date string does not parse as
// YYYY-MM-DD. Callers should reject the input rather than compare nonsense.
var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC;
// the engine works at whole-day granularity only.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// AddMonths advances a date by n calendar months. Day-of-month overflow
// clamps to the last valid day of the target month, so Jan 31 + 1 month is
// Feb 28 (or Feb 29 in a leap year), never Mar 2.
func AddMonths(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b, negative when b
// precedes a. Both inputs are expected to be midnight UTC dates.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
