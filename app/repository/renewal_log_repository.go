package repository

import (
	"gorm.io/gorm"

	"github.com/PiyawatK/SubTrack/app/models"
)

// renewalLogRepository implements the RenewalLogRepository interface
type renewalLogRepository struct {
	db *gorm.DB
}

// NewRenewalLogRepository creates a new renewal log repository instance
func NewRenewalLogRepository(db *gorm.DB) RenewalLogRepository {
	return &renewalLogRepository{db: db}
}

// GetByCustomerID retrieves a customer's renewal history, newest first
func (r *renewalLogRepository) GetByCustomerID(customerID uint) ([]models.RenewalLog, error) {
	var logs []models.RenewalLog
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// Count returns the total number of renewal log entries
func (r *renewalLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.RenewalLog{}).Count(&count).Error
	return count, err
}
