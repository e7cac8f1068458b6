package repository

import (
	"gorm.io/gorm"

	"github.com/PiyawatK/SubTrack/app/models"
)

// ownerRepository implements the OwnerRepository interface
type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository creates a new owner repository instance
func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

// Create creates a new customer owner in the database
func (r *ownerRepository) Create(owner *models.CustomerOwner) error {
	return r.db.Create(owner).Error
}

// GetByID retrieves an owner by its ID
func (r *ownerRepository) GetByID(id uint) (*models.CustomerOwner, error) {
	var owner models.CustomerOwner
	err := r.db.First(&owner, id).Error
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// GetActive retrieves active owners for selection lists
func (r *ownerRepository) GetActive() ([]models.CustomerOwner, error) {
	var owners []models.CustomerOwner
	err := r.db.Where("is_active = ?", true).
		Order("sort_order ASC").Order("name ASC").Find(&owners).Error
	return owners, err
}

// GetAll retrieves all owners including inactive ones
func (r *ownerRepository) GetAll() ([]models.CustomerOwner, error) {
	var owners []models.CustomerOwner
	err := r.db.Order("sort_order ASC").Order("name ASC").Find(&owners).Error
	return owners, err
}

// Update updates an existing owner in the database
func (r *ownerRepository) Update(owner *models.CustomerOwner) error {
	return r.db.Save(owner).Error
}
