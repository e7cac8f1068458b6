package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PiyawatK/SubTrack/app/models"
)

func event(ownerID *uint, customerID uint, eventType, planType string) models.BillingEvent {
	value := PlanValueOf(planType)
	return models.BillingEvent{
		CustomerID: customerID,
		OwnerID:    ownerID,
		EventType:  eventType,
		PlanType:   planType,
		Amount:     value.Amount,
		Currency:   value.Currency,
		EventMonth: date(2025, time.June, 1),
	}
}

func uintPtr(v uint) *uint { return &v }

func TestAggregateByOwnerSingleOwner(t *testing.T) {
	owner := uintPtr(1)
	entries := []models.BillingEvent{
		event(owner, 100, models.EventTypeNew, "DEPOSIT_1000"),
		event(owner, 100, models.EventTypeRenew, "MONTHLY_1000"),
	}

	rows := AggregateByOwner(entries, map[uint]string{1: "Team A"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.OwnerName != "Team A" {
		t.Fatalf("OwnerName = %q", row.OwnerName)
	}
	if !row.DepositUSD.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("DepositUSD = %s, want 1000", row.DepositUSD)
	}
	if !row.SubscriptionTHB.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("SubscriptionTHB = %s, want 1000", row.SubscriptionTHB)
	}
	if row.NewCount != 1 || row.RenewCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", row.NewCount, row.RenewCount)
	}
	if row.UniqueCustomers != 1 {
		t.Fatalf("UniqueCustomers = %d, want 1 (same customer twice)", row.UniqueCustomers)
	}
}

func TestAggregateByOwnerDistinctCustomers(t *testing.T) {
	owner := uintPtr(1)
	entries := []models.BillingEvent{
		event(owner, 100, models.EventTypeNew, "DEPOSIT_1000"),
		event(owner, 200, models.EventTypeRenew, "MONTHLY_1000"),
	}

	rows := AggregateByOwner(entries, map[uint]string{1: "Team A"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].UniqueCustomers != 2 {
		t.Fatalf("UniqueCustomers = %d, want 2", rows[0].UniqueCustomers)
	}
}

func TestAggregateByOwnerNoOwnerBucket(t *testing.T) {
	entries := []models.BillingEvent{
		event(nil, 100, models.EventTypeNew, "DEPOSIT_300"),
		event(nil, 200, models.EventTypeNew, "DEPOSIT_500"),
	}

	rows := AggregateByOwner(entries, nil)
	if len(rows) != 1 {
		t.Fatalf("expected unowned entries to collapse into one bucket, got %d rows", len(rows))
	}
	row := rows[0]
	if row.OwnerID != nil {
		t.Fatalf("OwnerID = %v, want nil", row.OwnerID)
	}
	if row.OwnerName != NoOwnerName {
		t.Fatalf("OwnerName = %q, want %q", row.OwnerName, NoOwnerName)
	}
	if !row.DepositUSD.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("DepositUSD = %s, want 800", row.DepositUSD)
	}
}

func TestAggregateByOwnerOrdering(t *testing.T) {
	a, b, c := uintPtr(1), uintPtr(2), uintPtr(3)
	entries := []models.BillingEvent{
		event(b, 1, models.EventTypeNew, "DEPOSIT_1000"),
		event(a, 2, models.EventTypeNew, "DEPOSIT_300"),
		event(c, 3, models.EventTypeNew, "DEPOSIT_300"),
		event(c, 3, models.EventTypeRenew, "MONTHLY_1000"),
	}

	rows := AggregateByOwner(entries, map[uint]string{1: "A", 2: "B", 3: "C"})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// B leads on USD; C beats A on the THB tiebreak.
	if rows[0].OwnerName != "B" || rows[1].OwnerName != "C" || rows[2].OwnerName != "A" {
		t.Fatalf("order = %q,%q,%q, want B,C,A", rows[0].OwnerName, rows[1].OwnerName, rows[2].OwnerName)
	}
}

// Summing deposit_usd across owner rows equals summing USD amounts across
// the raw entries, whatever the grouping.
func TestAggregateByOwnerAdditivity(t *testing.T) {
	entries := []models.BillingEvent{
		event(uintPtr(1), 1, models.EventTypeNew, "DEPOSIT_300"),
		event(uintPtr(1), 2, models.EventTypeRenew, "DEPOSIT_500"),
		event(uintPtr(2), 3, models.EventTypeNew, "DEPOSIT_1000"),
		event(nil, 4, models.EventTypeNew, "DEPOSIT_1000"),
		event(uintPtr(2), 5, models.EventTypeRenew, "MONTHLY_1000"),
	}

	var fromEntries decimal.Decimal
	for _, e := range entries {
		if e.Currency == models.CurrencyUSD {
			fromEntries = fromEntries.Add(e.Amount)
		}
	}

	var fromRows decimal.Decimal
	for _, row := range AggregateByOwner(entries, nil) {
		fromRows = fromRows.Add(row.DepositUSD)
	}

	if !fromRows.Equal(fromEntries) {
		t.Fatalf("aggregated USD %s != raw USD %s", fromRows, fromEntries)
	}
}

func TestBuildTrendGapFilling(t *testing.T) {
	start := date(2024, time.July, 1)

	points := BuildTrend(nil, start, 12)
	if len(points) != 12 {
		t.Fatalf("expected exactly 12 buckets for an empty ledger, got %d", len(points))
	}
	if points[0].Month != "2024-07" || points[11].Month != "2025-06" {
		t.Fatalf("window = %s..%s, want 2024-07..2025-06", points[0].Month, points[11].Month)
	}
	for i, p := range points {
		if i > 0 && points[i-1].Month >= p.Month {
			t.Fatalf("months not ascending: %s then %s", points[i-1].Month, p.Month)
		}
		if !p.DepositUSD.IsZero() || !p.SubscriptionTHB.IsZero() {
			t.Fatalf("bucket %s not zero-filled", p.Month)
		}
	}
}

func TestBuildTrendBucketsByEventMonth(t *testing.T) {
	start := date(2025, time.April, 1)
	mk := func(month time.Time, planType string) models.BillingEvent {
		e := event(nil, 1, models.EventTypeNew, planType)
		e.EventMonth = month
		return e
	}
	entries := []models.BillingEvent{
		mk(date(2025, time.April, 1), "DEPOSIT_300"),
		mk(date(2025, time.April, 1), "MONTHLY_1000"),
		mk(date(2025, time.June, 1), "DEPOSIT_500"),
		mk(date(2024, time.December, 1), "DEPOSIT_1000"), // outside the window
	}

	points := BuildTrend(entries, start, 3)
	if len(points) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(points))
	}
	if !points[0].DepositUSD.Equal(decimal.NewFromInt(300)) || !points[0].SubscriptionTHB.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("2025-04 = %s USD / %s THB", points[0].DepositUSD, points[0].SubscriptionTHB)
	}
	if !points[1].DepositUSD.IsZero() {
		t.Fatalf("2025-05 should be empty, got %s", points[1].DepositUSD)
	}
	if !points[2].DepositUSD.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("2025-06 = %s, want 500", points[2].DepositUSD)
	}
}

// The concrete scenario from the reporting contract: one NEW deposit and one
// RENEW subscription for the same owner and month give one row combining both
// currencies.
func TestAggregateByOwnerMixedCurrencyScenario(t *testing.T) {
	owner := uintPtr(9)
	entries := []models.BillingEvent{
		event(owner, 500, models.EventTypeNew, "DEPOSIT_1000"),
		event(owner, 500, models.EventTypeRenew, "MONTHLY_1000"),
	}

	rows := AggregateByOwner(entries, map[uint]string{9: "Owner Nine"})
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if !row.DepositUSD.Equal(decimal.NewFromInt(1000)) ||
		!row.SubscriptionTHB.Equal(decimal.NewFromInt(1000)) ||
		row.NewCount != 1 || row.RenewCount != 1 || row.UniqueCustomers != 1 {
		t.Fatalf("row = %+v", row)
	}
}
