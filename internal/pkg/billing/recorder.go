package billing

import (
	"time"

	"github.com/PiyawatK/SubTrack/app/models"
)

// BuildLedgerEntry turns one lifecycle event into at most one ledger entry.
// Trial tiers (and unknown plan identifiers, which degrade to non-countable)
// produce nil: they are invisible to revenue reporting.
//
// Amount and currency are snapshotted from the catalog at build time; the
// stored entry is never recomputed if the catalog changes later.
func BuildLedgerEntry(eventType string, customer *models.Customer, planType string, eventAt time.Time) *models.BillingEvent {
	value := PlanValueOf(planType)
	if !value.Countable {
		return nil
	}
	return &models.BillingEvent{
		CustomerID: customer.ID,
		OwnerID:    customer.OwnerID,
		EventType:  eventType,
		PlanType:   planType,
		Amount:     value.Amount,
		Currency:   value.Currency,
		EventAt:    eventAt,
		EventMonth: MonthStart(eventAt),
	}
}
