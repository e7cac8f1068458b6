package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the derived lifecycle state of a subscription. It is computed
// from the expiry date on every read and never persisted.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusExpiring Status = "EXPIRING"
	StatusExpired  Status = "EXPIRED"
)

// PlanValue is the monetary value of one plan tier. Non-countable plans
// (trial tiers) are invisible to revenue reporting.
type PlanValue struct {
	Amount    decimal.Decimal
	Currency  string
	Countable bool
}

// OwnerSummary is one row of the per-owner monthly revenue report.
type OwnerSummary struct {
	OwnerID         *uint           `json:"owner_id"`
	OwnerName       string          `json:"owner_name"`
	DepositUSD      decimal.Decimal `json:"deposit_usd"`
	SubscriptionTHB decimal.Decimal `json:"subscription_thb"`
	NewCount        int             `json:"new_count"`
	RenewCount      int             `json:"renew_count"`
	UniqueCustomers int             `json:"unique_customers"`
}

// TrendPoint is one calendar-month bucket of the revenue trend. Months with
// no activity still appear, with zero totals.
type TrendPoint struct {
	Month           string          `json:"month"` // YYYY-MM
	DepositUSD      decimal.Decimal `json:"deposit_usd"`
	SubscriptionTHB decimal.Decimal `json:"subscription_thb"`
}

// StatusOverview counts customers per derived lifecycle status.
type StatusOverview struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// CustomerDue is one line of the expiry report: a customer together with the
// signed number of days until (negative: days since) expiry.
type CustomerDue struct {
	Name       string     `json:"name"`
	AccountNo  string     `json:"account_no"`
	PlanType   string     `json:"plan_type"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Days       int        `json:"days"`
}

// ExpiryReport groups customers that are about to expire or already have.
type ExpiryReport struct {
	Expiring []CustomerDue `json:"expiring"`
	Expired  []CustomerDue `json:"expired"`
}
