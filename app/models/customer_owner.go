package models

import "time"

// CustomerOwner is the referring/managing party a customer is attributed to
// in revenue reporting. Referential only; customers may have no owner.
type CustomerOwner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
