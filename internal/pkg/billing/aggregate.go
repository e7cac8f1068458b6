package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PiyawatK/SubTrack/app/models"
)

// NoOwnerName labels the bucket that collects ledger entries without an
// owner attribution.
const NoOwnerName = "NO_OWNER"

type ownerAccumulator struct {
	ownerID         *uint
	depositUSD      decimal.Decimal
	subscriptionTHB decimal.Decimal
	newCount        int
	renewCount      int
	customers       map[uint]struct{}
}

// AggregateByOwner folds one month's ledger entries into per-owner totals.
// Entries without an owner collapse into a single NO_OWNER bucket. Rows come
// back ordered by deposit USD, then subscription THB, then unique customers,
// all descending; final tie-break on owner id keeps the output deterministic.
//
// unique_customers is distinct within an owner group only: a customer billed
// under two owners in the same month counts once per owner. That is the
// per-owner view's contract, not an accident.
func AggregateByOwner(entries []models.BillingEvent, ownerNames map[uint]string) []OwnerSummary {
	groups := make(map[uint]*ownerAccumulator)

	for i := range entries {
		e := &entries[i]
		var key uint // 0 = no owner; real ids start at 1
		if e.OwnerID != nil {
			key = *e.OwnerID
		}
		acc, ok := groups[key]
		if !ok {
			acc = &ownerAccumulator{
				ownerID:         e.OwnerID,
				depositUSD:      decimal.Zero,
				subscriptionTHB: decimal.Zero,
				customers:       make(map[uint]struct{}),
			}
			groups[key] = acc
		}

		switch e.Currency {
		case models.CurrencyUSD:
			acc.depositUSD = acc.depositUSD.Add(e.Amount)
		case models.CurrencyTHB:
			acc.subscriptionTHB = acc.subscriptionTHB.Add(e.Amount)
		}
		switch e.EventType {
		case models.EventTypeNew:
			acc.newCount++
		case models.EventTypeRenew:
			acc.renewCount++
		}
		acc.customers[e.CustomerID] = struct{}{}
	}

	out := make([]OwnerSummary, 0, len(groups))
	for key, acc := range groups {
		name := NoOwnerName
		if acc.ownerID != nil {
			name = "-"
			if n, ok := ownerNames[key]; ok {
				name = n
			}
		}
		out = append(out, OwnerSummary{
			OwnerID:         acc.ownerID,
			OwnerName:       name,
			DepositUSD:      acc.depositUSD,
			SubscriptionTHB: acc.subscriptionTHB,
			NewCount:        acc.newCount,
			RenewCount:      acc.renewCount,
			UniqueCustomers: len(acc.customers),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := a.DepositUSD.Cmp(b.DepositUSD); c != 0 {
			return c > 0
		}
		if c := a.SubscriptionTHB.Cmp(b.SubscriptionTHB); c != 0 {
			return c > 0
		}
		if a.UniqueCustomers != b.UniqueCustomers {
			return a.UniqueCustomers > b.UniqueCustomers
		}
		return ownerKey(a.OwnerID) < ownerKey(b.OwnerID)
	})
	return out
}

func ownerKey(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

// BuildTrend distributes ledger entries into exactly `months` calendar-month
// buckets starting at `start` (a month-start date). Months with no entries
// stay in the output with zero totals; entries outside the window are
// ignored. Buckets come back in chronological order.
func BuildTrend(entries []models.BillingEvent, start time.Time, months int) []TrendPoint {
	points := make([]TrendPoint, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		label := FormatMonth(AddMonthsClamped(start, i))
		points[i] = TrendPoint{
			Month:           label,
			DepositUSD:      decimal.Zero,
			SubscriptionTHB: decimal.Zero,
		}
		index[label] = i
	}

	for i := range entries {
		e := &entries[i]
		pos, ok := index[FormatMonth(e.EventMonth)]
		if !ok {
			continue
		}
		switch e.Currency {
		case models.CurrencyUSD:
			points[pos].DepositUSD = points[pos].DepositUSD.Add(e.Amount)
		case models.CurrencyTHB:
			points[pos].SubscriptionTHB = points[pos].SubscriptionTHB.Add(e.Amount)
		}
	}
	return points
}
