package billing

import (
	"errors"
	"testing"
	"time"
)

func TestComputeRenewalMonthOverflow(t *testing.T) {
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		months int
		want   time.Time
	}{
		{name: "jan 31 clamps to feb 28", expiry: date(2025, time.January, 31), months: 1, want: date(2025, time.February, 28)},
		{name: "leap year clamps to feb 29", expiry: date(2024, time.January, 31), months: 13, want: date(2025, time.February, 28)},
		{name: "mar 31 clamps to apr 30", expiry: date(2025, time.March, 31), months: 1, want: date(2025, time.April, 30)},
		{name: "plain add keeps the day", expiry: date(2025, time.March, 15), months: 2, want: date(2025, time.May, 15)},
		{name: "crosses year boundary", expiry: date(2025, time.November, 30), months: 3, want: date(2026, time.February, 28)},
	}

	for _, tt := range tests {
		expiry := tt.expiry
		got, err := ComputeRenewal(&expiry, now, tt.months)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("%s: ComputeRenewal = %s, want %s", tt.name, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestComputeRenewalLapsedClamp(t *testing.T) {
	// A subscription that expired in 2020 renews from today, not from 2020.
	now := time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)
	expiry := date(2020, time.January, 1)

	got, err := ComputeRenewal(&expiry, now, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := date(2025, time.July, 10)
	if !got.Equal(want) {
		t.Fatalf("ComputeRenewal = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestComputeRenewalMissingExpiry(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 30, 0, 0, time.UTC)

	got, err := ComputeRenewal(nil, now, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := date(2025, time.August, 10); !got.Equal(want) {
		t.Fatalf("ComputeRenewal(nil expiry) = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestComputeRenewalInvalidMonths(t *testing.T) {
	now := time.Now()
	expiry := now.AddDate(0, 1, 0)
	for _, months := range []int{0, -1, -12} {
		if _, err := ComputeRenewal(&expiry, now, months); !errors.Is(err, ErrInvalidMonths) {
			t.Fatalf("ComputeRenewal(months=%d) error = %v, want ErrInvalidMonths", months, err)
		}
	}
}

// The result is always a valid calendar date: the day never exceeds the
// target month's length and the time-of-day component is stripped.
func TestComputeRenewalShape(t *testing.T) {
	now := time.Date(2025, time.January, 1, 13, 45, 12, 0, time.UTC)
	for day := 1; day <= 31; day++ {
		expiry := date(2025, time.January, day)
		for months := 1; months <= 24; months++ {
			got, err := ComputeRenewal(&expiry, now, months)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Day() > daysInMonth(got.Year(), got.Month()) {
				t.Fatalf("day %d invalid for %s", got.Day(), got.Month())
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Fatalf("expected a pure date, got %s", got)
			}
		}
	}
}

func TestAddMonthsClampedBackward(t *testing.T) {
	tests := []struct {
		in     time.Time
		months int
		want   time.Time
	}{
		{in: date(2025, time.March, 1), months: -1, want: date(2025, time.February, 1)},
		{in: date(2025, time.January, 1), months: -1, want: date(2024, time.December, 1)},
		{in: date(2025, time.March, 31), months: -1, want: date(2025, time.February, 28)},
		{in: date(2025, time.June, 1), months: -23, want: date(2023, time.July, 1)},
	}
	for _, tt := range tests {
		if got := AddMonthsClamped(tt.in, tt.months); !got.Equal(tt.want) {
			t.Fatalf("AddMonthsClamped(%s, %d) = %s, want %s",
				tt.in.Format("2006-01-02"), tt.months, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2025, time.June, 17, 22, 14, 3, 0, time.UTC)
	if got := MonthStart(in); !got.Equal(date(2025, time.June, 1)) {
		t.Fatalf("MonthStart = %s", got)
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2026-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(2026, time.February, 1)) {
		t.Fatalf("ParseMonth = %s", got)
	}

	for _, in := range []string{"", "2026", "2026-2", "2026-13", "02-2026", "2026-02-01"} {
		if _, err := ParseMonth(in); err == nil {
			t.Fatalf("expected ParseMonth(%q) to fail", in)
		}
	}
}
