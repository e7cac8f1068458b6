package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultBrokerName = "Eterwealth"
	DefaultPlanType   = "MONTHLY_1000"
)

// Customer is a tracked subscription. The lifecycle status (active/expiring/
// expired) is never stored here; it is derived from ExpiryDate on every read.
type Customer struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Name            string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=1,max=150"`
	Phone           string         `gorm:"type:varchar(50);default:null" json:"phone" validate:"max=50"`
	LineID          string         `gorm:"type:varchar(100);default:null" json:"line_id" validate:"max=100"`
	AccountNo       string         `gorm:"type:varchar(100);not null;index" json:"account_no" validate:"required,min=1,max=100"`
	BrokerName      string         `gorm:"type:varchar(100);not null;default:'Eterwealth'" json:"broker_name" validate:"max=100"`
	TradingViewUser string         `gorm:"type:varchar(100);default:null" json:"tradingview_user" validate:"max=100"`
	PlanType        string         `gorm:"type:varchar(50);not null;default:'MONTHLY_1000'" json:"plan_type" validate:"max=50"`
	ExpiryDate      *time.Time     `gorm:"type:date;index" json:"expiry_date"`
	OwnerID         *uint          `gorm:"index" json:"owner_id"`
	Owner           *CustomerOwner `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Note            string         `gorm:"type:text" json:"note"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// BeforeCreate assigns a public UUID and fills defaulted fields so records
// inserted outside the HTTP layer stay consistent.
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	if strings.TrimSpace(c.BrokerName) == "" {
		c.BrokerName = DefaultBrokerName
	}
	if strings.TrimSpace(c.PlanType) == "" {
		c.PlanType = DefaultPlanType
	}
	return nil
}
