package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PiyawatK/SubTrack/app/models"
)

func TestPlanValueOf(t *testing.T) {
	tests := []struct {
		in        string
		amount    int64
		currency  string
		countable bool
	}{
		{in: "DEPOSIT_300", amount: 300, currency: models.CurrencyUSD, countable: true},
		{in: "DEPOSIT_500", amount: 500, currency: models.CurrencyUSD, countable: true},
		{in: "DEPOSIT_1000", amount: 1000, currency: models.CurrencyUSD, countable: true},
		{in: "MONTHLY_1000", amount: 1000, currency: models.CurrencyTHB, countable: true},
		{in: "TRY_7", amount: 0, currency: models.CurrencyTHB, countable: false},
		{in: "TRY_14", amount: 0, currency: models.CurrencyTHB, countable: false},
		{in: "  MONTHLY_1000  ", amount: 1000, currency: models.CurrencyTHB, countable: true},
	}

	for _, tt := range tests {
		got := PlanValueOf(tt.in)
		if !got.Amount.Equal(decimal.NewFromInt(tt.amount)) {
			t.Fatalf("PlanValueOf(%q).Amount = %s, want %d", tt.in, got.Amount, tt.amount)
		}
		if got.Currency != tt.currency {
			t.Fatalf("PlanValueOf(%q).Currency = %q, want %q", tt.in, got.Currency, tt.currency)
		}
		if got.Countable != tt.countable {
			t.Fatalf("PlanValueOf(%q).Countable = %t, want %t", tt.in, got.Countable, tt.countable)
		}
	}
}

func TestPlanValueOfUnknownPlan(t *testing.T) {
	for _, in := range []string{"", "GOLD_9000", "monthly_1000", "  "} {
		got := PlanValueOf(in)
		if got.Countable {
			t.Fatalf("expected unknown plan %q to be non-countable", in)
		}
		if !got.Amount.IsZero() {
			t.Fatalf("expected unknown plan %q to have zero amount, got %s", in, got.Amount)
		}
		if got.Currency != models.CurrencyTHB {
			t.Fatalf("expected unknown plan %q to default to THB, got %q", in, got.Currency)
		}
	}
}

func TestKnownPlanTypes(t *testing.T) {
	plans := KnownPlanTypes()
	if len(plans) != 6 {
		t.Fatalf("expected 6 catalog plans, got %d", len(plans))
	}
	for i := 1; i < len(plans); i++ {
		if plans[i-1] >= plans[i] {
			t.Fatalf("expected sorted plan list, got %v", plans)
		}
	}
}
