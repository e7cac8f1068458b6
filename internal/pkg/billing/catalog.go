package billing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PiyawatK/SubTrack/app/models"
)

// The plan catalog is fixed at deploy time. Amounts and currencies here are
// snapshotted into billing events at write time, so editing this table never
// rewrites history.
var planCatalog = map[string]PlanValue{
	"DEPOSIT_300":  {Amount: decimal.NewFromInt(300), Currency: models.CurrencyUSD, Countable: true},
	"DEPOSIT_500":  {Amount: decimal.NewFromInt(500), Currency: models.CurrencyUSD, Countable: true},
	"DEPOSIT_1000": {Amount: decimal.NewFromInt(1000), Currency: models.CurrencyUSD, Countable: true},
	"MONTHLY_1000": {Amount: decimal.NewFromInt(1000), Currency: models.CurrencyTHB, Countable: true},
	"TRY_7":        {Amount: decimal.Zero, Currency: models.CurrencyTHB, Countable: false},
	"TRY_14":       {Amount: decimal.Zero, Currency: models.CurrencyTHB, Countable: false},
}

// PlanValueOf resolves a plan identifier to its monetary value. Unknown plans
// degrade to a zero-value non-countable plan instead of failing, so an
// unrecognized identifier never puts a fabricated amount into the ledger.
func PlanValueOf(planType string) PlanValue {
	if v, ok := planCatalog[strings.TrimSpace(planType)]; ok {
		return v
	}
	return PlanValue{Amount: decimal.Zero, Currency: models.CurrencyTHB, Countable: false}
}

// KnownPlanTypes lists the catalog's plan identifiers, sorted for stable use
// in validation messages and the admin API.
func KnownPlanTypes() []string {
	out := make([]string, 0, len(planCatalog))
	for k := range planCatalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
