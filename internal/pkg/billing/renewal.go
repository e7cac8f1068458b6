package billing

import (
	"errors"
	"time"
)

// ErrInvalidMonths rejects non-positive month counts before any computation
// or write happens.
var ErrInvalidMonths = errors.New("months must be a positive integer")

// ComputeRenewal returns the expiry date after extending a subscription by
// the given number of calendar months.
//
// The base date is the current expiry when present. A lapsed subscription
// renews from today instead of its stale expiry, so the time it sat expired
// is not silently granted. The result is a pure calendar date (midnight UTC).
func ComputeRenewal(expiry *time.Time, now time.Time, months int) (time.Time, error) {
	if months <= 0 {
		return time.Time{}, ErrInvalidMonths
	}
	base := now
	if expiry != nil && !expiry.IsZero() && !expiry.Before(now) {
		base = *expiry
	}
	return AddMonthsClamped(DateOf(base), months), nil
}

// AddMonthsClamped adds calendar months to a date. When the source
// day-of-month does not exist in the target month (Jan 31 + 1 month), the
// result clamps to the last day of the target month instead of rolling into
// the following one, which is what time.AddDate would do.
func AddMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	total := y*12 + int(m) - 1 + months
	ty, tm := total/12, time.Month(total%12+1)
	if last := daysInMonth(ty, tm); day > last {
		day = last
	}
	return time.Date(ty, tm, day, 0, 0, 0, 0, time.UTC)
}

// MonthStart normalizes a timestamp to the first day of its calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the time-of-day component, keeping the calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseMonth parses a YYYY-MM month label into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	return time.Parse("2006-01", s)
}

// FormatMonth renders the YYYY-MM label of a date's calendar month.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
