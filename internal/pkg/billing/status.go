package billing

import (
	"math"
	"time"
)

// ExpiringWindowDays is the number of days before expiry during which a
// subscription counts as EXPIRING rather than ACTIVE.
const ExpiringWindowDays = 15

// DaysUntilExpiry returns the number of whole days from now until expiry,
// rounding fractional days toward the later boundary. Negative values mean
// the expiry already passed.
func DaysUntilExpiry(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// ClassifyStatus derives the lifecycle status from the expiry date. It must
// be called fresh on every read: "now" moves, so a cached status is never
// correct. Missing expiry dates classify as EXPIRED.
func ClassifyStatus(expiry *time.Time, now time.Time) Status {
	if expiry == nil || expiry.IsZero() {
		return StatusExpired
	}
	d := DaysUntilExpiry(*expiry, now)
	if d < 0 {
		return StatusExpired
	}
	if d <= ExpiringWindowDays {
		return StatusExpiring
	}
	return StatusActive
}
