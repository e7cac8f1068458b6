package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/PiyawatK/SubTrack/app/models"
	"github.com/PiyawatK/SubTrack/internal/pkg/telegram"
)

// MaxTrendMonths bounds the trend window; requests outside 1..24 clamp to it.
const MaxTrendMonths = 24

var (
	ErrNameRequired       = errors.New("name is required")
	ErrAccountNoRequired  = errors.New("account_no is required")
	ErrExpiryDateRequired = errors.New("expiry_date is required")
)

// Notifier is the best-effort side channel for lifecycle messages. A failed
// notification is logged and swallowed; it never rolls back a write.
type Notifier interface {
	Notify(text string) error
}

// Service orchestrates subscription lifecycle events and revenue reporting
// over an injected record store and notifier.
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates a billing service from an injected repository and
// notifier. A nil notifier disables notifications.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// NewServiceFromDB creates a billing service from a GORM DB handle, wired to
// the Telegram notifier configured via environment variables.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), telegram.NewClientFromEnv())
}

// RegisterCustomer stores a new customer and appends the matching NEW ledger
// entry in one transaction. Trial plans register fine but produce no entry.
func (s *Service) RegisterCustomer(ctx context.Context, customer *models.Customer) error {
	_ = ctx
	customer.Name = strings.TrimSpace(customer.Name)
	customer.AccountNo = strings.TrimSpace(customer.AccountNo)
	if customer.Name == "" {
		return ErrNameRequired
	}
	if customer.AccountNo == "" {
		return ErrAccountNoRequired
	}
	if customer.ExpiryDate == nil || customer.ExpiryDate.IsZero() {
		return ErrExpiryDateRequired
	}

	eventAt := time.Now()
	err := s.repo.WithinTransaction(func(tx Repository) error {
		if err := tx.CreateCustomer(customer); err != nil {
			return err
		}
		if entry := BuildLedgerEntry(models.EventTypeNew, customer, customer.PlanType, eventAt); entry != nil {
			return tx.AppendBillingEvent(entry)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(fmt.Sprintf(
		"✅ *New signup*\nName: %s\nAccount: `%s`\nPlan: %s\nExpiry: %s",
		customer.Name, customer.AccountNo, customer.PlanType,
		formatDatePtr(customer.ExpiryDate),
	))
	return nil
}

// ExtendResult reports a completed renewal.
type ExtendResult struct {
	Customer  *models.Customer
	OldExpiry *time.Time
	NewExpiry time.Time
	Months    int
}

// ExtendSubscription advances a customer's expiry by the given number of
// calendar months and appends the RENEW ledger entry plus a renewal log row.
//
// Everything runs in one transaction with the customer row locked, so two
// near-simultaneous extends cannot both read the same stale expiry; the
// second waits and renews on top of the first. Store failures surface to the
// caller, the trailing notification does not.
func (s *Service) ExtendSubscription(ctx context.Context, customerID uint, months int) (*ExtendResult, error) {
	_ = ctx
	if months <= 0 {
		return nil, ErrInvalidMonths
	}

	now := time.Now()
	var result *ExtendResult
	err := s.repo.WithinTransaction(func(tx Repository) error {
		customer, err := tx.GetCustomerForUpdate(customerID)
		if err != nil {
			return err
		}

		newExpiry, err := ComputeRenewal(customer.ExpiryDate, now, months)
		if err != nil {
			return err
		}
		if err := tx.UpdateCustomerExpiry(customer.ID, newExpiry); err != nil {
			return err
		}
		if err := tx.CreateRenewalLog(&models.RenewalLog{
			CustomerID:    customer.ID,
			Months:        months,
			OldExpiryDate: customer.ExpiryDate,
			NewExpiryDate: newExpiry,
		}); err != nil {
			return err
		}
		if entry := BuildLedgerEntry(models.EventTypeRenew, customer, customer.PlanType, now); entry != nil {
			if err := tx.AppendBillingEvent(entry); err != nil {
				return err
			}
		}

		oldExpiry := customer.ExpiryDate
		customer.ExpiryDate = &newExpiry
		result = &ExtendResult{
			Customer:  customer,
			OldExpiry: oldExpiry,
			NewExpiry: newExpiry,
			Months:    months,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(fmt.Sprintf(
		"✅ *Renewal*\nName: %s\nAccount: `%s`\nMonths: +%d\nNew expiry: %s",
		result.Customer.Name, result.Customer.AccountNo, months,
		result.NewExpiry.Format("2006-01-02"),
	))
	return result, nil
}

// OwnerReport aggregates one calendar month's ledger entries per owner.
// month must be a month-start date; ownerID narrows the report to one owner.
func (s *Service) OwnerReport(ctx context.Context, month time.Time, ownerID *uint) ([]OwnerSummary, error) {
	_ = ctx
	entries, err := s.repo.ListBillingEventsByMonth(month, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(entries))
	seen := make(map[uint]struct{})
	for i := range entries {
		if entries[i].OwnerID == nil {
			continue
		}
		id := *entries[i].OwnerID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	names, err := s.repo.ListOwnerNames(ids)
	if err != nil {
		return nil, err
	}
	return AggregateByOwner(entries, names), nil
}

// Trend returns per-month revenue totals for the trailing `months` calendar
// months including the current one. The window clamps to 1..MaxTrendMonths;
// months without activity appear with zero totals.
func (s *Service) Trend(ctx context.Context, months int, ownerID *uint) ([]TrendPoint, error) {
	_ = ctx
	if months < 1 {
		months = 1
	}
	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	end := MonthStart(time.Now())
	start := AddMonthsClamped(end, -(months - 1))

	entries, err := s.repo.ListBillingEventsInRange(start, end, ownerID)
	if err != nil {
		return nil, err
	}
	return BuildTrend(entries, start, months), nil
}

// StatusOverview counts all customers by their derived lifecycle status.
func (s *Service) StatusOverview(ctx context.Context) (*StatusOverview, error) {
	_ = ctx
	customers, err := s.repo.ListCustomers()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overview := &StatusOverview{Total: len(customers)}
	for i := range customers {
		switch ClassifyStatus(customers[i].ExpiryDate, now) {
		case StatusActive:
			overview.Active++
		case StatusExpiring:
			overview.Expiring++
		case StatusExpired:
			overview.Expired++
		}
	}
	return overview, nil
}

// ExpiryDigest collects expiring and expired customers and pushes the digest
// through the notifier. The report is returned either way; only the primary
// read can fail.
func (s *Service) ExpiryDigest(ctx context.Context) (*ExpiryReport, error) {
	_ = ctx
	customers, err := s.repo.ListCustomers()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &ExpiryReport{
		Expiring: []CustomerDue{},
		Expired:  []CustomerDue{},
	}
	for i := range customers {
		c := &customers[i]
		due := CustomerDue{
			Name:       c.Name,
			AccountNo:  c.AccountNo,
			PlanType:   c.PlanType,
			ExpiryDate: c.ExpiryDate,
		}
		if c.ExpiryDate == nil || c.ExpiryDate.IsZero() {
			report.Expired = append(report.Expired, due)
			continue
		}
		due.Days = DaysUntilExpiry(*c.ExpiryDate, now)
		switch {
		case due.Days < 0:
			report.Expired = append(report.Expired, due)
		case due.Days <= ExpiringWindowDays:
			report.Expiring = append(report.Expiring, due)
		}
	}

	s.notify(formatExpiryDigest(report))
	return report, nil
}

// digestLimit caps each section of the Telegram digest so a large customer
// base does not blow past Telegram's message size limit.
const digestLimit = 30

func formatExpiryDigest(report *ExpiryReport) string {
	var b strings.Builder
	b.WriteString("📌 *Subscription expiry report*\n")

	fmt.Fprintf(&b, "⏰ *Expiring (≤%d days)*: %d\n", ExpiringWindowDays, len(report.Expiring))
	for i, c := range report.Expiring {
		if i == digestLimit {
			fmt.Fprintf(&b, "...and %d more\n", len(report.Expiring)-digestLimit)
			break
		}
		fmt.Fprintf(&b, "- %s | `%s` | %s (%d days left)\n", c.Name, c.AccountNo, formatDatePtr(c.ExpiryDate), c.Days)
	}

	fmt.Fprintf(&b, "\n❌ *Expired*: %d\n", len(report.Expired))
	for i, c := range report.Expired {
		if i == digestLimit {
			fmt.Fprintf(&b, "...and %d more\n", len(report.Expired)-digestLimit)
			break
		}
		fmt.Fprintf(&b, "- %s | `%s` | %s (%d days overdue)\n", c.Name, c.AccountNo, formatDatePtr(c.ExpiryDate), -c.Days)
	}
	return b.String()
}

func (s *Service) notify(text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(text); err != nil {
		log.Printf("notification failed: %v", err)
	}
}

func formatDatePtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
