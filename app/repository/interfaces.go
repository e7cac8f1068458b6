package repository

import (
	"gorm.io/gorm"

	"github.com/PiyawatK/SubTrack/app/models"
)

// CustomerRepository defines the interface for customer-related database operations
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByUUID(uuid string) (*models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id uint) error
	List() ([]models.Customer, error)
	Count() (int64, error)
}

// OwnerRepository defines the interface for customer-owner database operations
type OwnerRepository interface {
	Create(owner *models.CustomerOwner) error
	GetByID(id uint) (*models.CustomerOwner, error)
	GetActive() ([]models.CustomerOwner, error)
	GetAll() ([]models.CustomerOwner, error)
	Update(owner *models.CustomerOwner) error
}

// RenewalLogRepository defines the interface for renewal audit records
type RenewalLogRepository interface {
	GetByCustomerID(customerID uint) ([]models.RenewalLog, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Customer   CustomerRepository
	Owner      OwnerRepository
	RenewalLog RenewalLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Customer:   NewCustomerRepository(db),
		Owner:      NewOwnerRepository(db),
		RenewalLog: NewRenewalLogRepository(db),
	}
}
