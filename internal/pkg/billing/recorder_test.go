package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PiyawatK/SubTrack/app/models"
)

func TestBuildLedgerEntrySnapshotsPlanValue(t *testing.T) {
	ownerID := uint(7)
	customer := &models.Customer{ID: 42, OwnerID: &ownerID}
	eventAt := time.Date(2025, time.June, 17, 14, 30, 0, 0, time.UTC)

	entry := BuildLedgerEntry(models.EventTypeNew, customer, "DEPOSIT_1000", eventAt)
	if entry == nil {
		t.Fatal("expected a ledger entry for a countable plan")
	}
	if entry.CustomerID != 42 {
		t.Fatalf("CustomerID = %d, want 42", entry.CustomerID)
	}
	if entry.OwnerID == nil || *entry.OwnerID != 7 {
		t.Fatalf("OwnerID = %v, want 7", entry.OwnerID)
	}
	if entry.EventType != models.EventTypeNew {
		t.Fatalf("EventType = %q, want NEW", entry.EventType)
	}
	if !entry.Amount.Equal(decimal.NewFromInt(1000)) || entry.Currency != models.CurrencyUSD {
		t.Fatalf("snapshot = %s %s, want 1000 USD", entry.Amount, entry.Currency)
	}
	if !entry.EventAt.Equal(eventAt) {
		t.Fatalf("EventAt = %s, want %s", entry.EventAt, eventAt)
	}
	if want := date(2025, time.June, 1); !entry.EventMonth.Equal(want) {
		t.Fatalf("EventMonth = %s, want %s", entry.EventMonth, want)
	}
}

func TestBuildLedgerEntrySkipsNonCountablePlans(t *testing.T) {
	customer := &models.Customer{ID: 1}
	at := time.Now()
	for _, plan := range []string{"TRY_7", "TRY_14", "UNKNOWN_PLAN", ""} {
		if entry := BuildLedgerEntry(models.EventTypeNew, customer, plan, at); entry != nil {
			t.Fatalf("expected no ledger entry for plan %q", plan)
		}
	}
}
