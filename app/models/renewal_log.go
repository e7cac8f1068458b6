package models

import "time"

// RenewalLog is the audit trail of expiry extensions. One row per successful
// extend, written in the same transaction as the expiry update.
type RenewalLog struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CustomerID    uint       `gorm:"not null;index" json:"customer_id"`
	Months        int        `gorm:"not null" json:"months" validate:"gt=0"`
	OldExpiryDate *time.Time `gorm:"type:date" json:"old_expiry_date"`
	NewExpiryDate time.Time  `gorm:"type:date;not null" json:"new_expiry_date"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
