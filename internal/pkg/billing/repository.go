package billing

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PiyawatK/SubTrack/app/models"
)

// Repository is the record store the billing service runs against.
//
// WithinTransaction yields a repository scoped to one transaction; the
// service uses it to keep the subscription-expiry update and the ledger
// append atomic. GetCustomerForUpdate takes a row lock inside such a
// transaction, which serializes concurrent renewals of the same customer.
type Repository interface {
	WithinTransaction(fn func(Repository) error) error

	CreateCustomer(customer *models.Customer) error
	GetCustomer(id uint) (*models.Customer, error)
	GetCustomerForUpdate(id uint) (*models.Customer, error)
	UpdateCustomerExpiry(id uint, expiry time.Time) error
	ListCustomers() ([]models.Customer, error)

	AppendBillingEvent(entry *models.BillingEvent) error
	ListBillingEventsByMonth(month time.Time, ownerID *uint) ([]models.BillingEvent, error)
	ListBillingEventsInRange(start, end time.Time, ownerID *uint) ([]models.BillingEvent, error)

	CreateRenewalLog(entry *models.RenewalLog) error
	ListOwnerNames(ids []uint) (map[uint]string, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithinTransaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) CreateCustomer(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *gormRepository) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("Owner").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerForUpdate reads a customer under SELECT ... FOR UPDATE. Only
// meaningful inside WithinTransaction; without one the lock releases
// immediately.
func (r *gormRepository) GetCustomerForUpdate(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormRepository) UpdateCustomerExpiry(id uint, expiry time.Time) error {
	return r.db.Model(&models.Customer{}).Where("id = ?", id).
		Update("expiry_date", expiry).Error
}

func (r *gormRepository) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *gormRepository) AppendBillingEvent(entry *models.BillingEvent) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) ListBillingEventsByMonth(month time.Time, ownerID *uint) ([]models.BillingEvent, error) {
	q := r.db.Where("event_month = ?", month)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var entries []models.BillingEvent
	err := q.Find(&entries).Error
	return entries, err
}

func (r *gormRepository) ListBillingEventsInRange(start, end time.Time, ownerID *uint) ([]models.BillingEvent, error) {
	q := r.db.Where("event_month >= ? AND event_month <= ?", start, end)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var entries []models.BillingEvent
	err := q.Find(&entries).Error
	return entries, err
}

func (r *gormRepository) CreateRenewalLog(entry *models.RenewalLog) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) ListOwnerNames(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var owners []models.CustomerOwner
	if err := r.db.Where("id IN ?", ids).Find(&owners).Error; err != nil {
		return nil, err
	}
	for _, o := range owners {
		names[o.ID] = o.Name
	}
	return names, nil
}
