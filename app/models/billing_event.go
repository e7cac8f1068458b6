package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventTypeNew   = "NEW"
	EventTypeRenew = "RENEW"
)

const (
	CurrencyUSD = "USD"
	CurrencyTHB = "THB"
)

// BillingEvent is one immutable ledger entry for a monetizable subscription
// event. Amount and Currency are a snapshot of the plan value at write time
// and are never recomputed, even if the plan catalog changes later.
// Rows are append-only: nothing in the application updates or deletes them.
type BillingEvent struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"not null;index" json:"customer_id"`
	OwnerID    *uint           `gorm:"index" json:"owner_id"`
	EventType  string          `gorm:"type:varchar(10);not null" json:"event_type" validate:"oneof=NEW RENEW"`
	PlanType   string          `gorm:"type:varchar(50);not null" json:"plan_type"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency   string          `gorm:"type:varchar(3);not null" json:"currency" validate:"oneof=USD THB"`
	EventAt    time.Time       `gorm:"not null" json:"event_at"`
	EventMonth time.Time       `gorm:"type:date;not null;index" json:"event_month"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
