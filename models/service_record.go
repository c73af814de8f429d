package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceRecord is one repair or maintenance visit logged against an appliance.
type ServiceRecord struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ApplianceID   uint            `gorm:"index;not null" json:"appliance_id"`
	ServiceDate   time.Time       `gorm:"not null" json:"service_date"`
	VendorName    string          `gorm:"size:100;not null" json:"vendor_name"`
	VendorContact string          `gorm:"size:20;not null" json:"vendor_contact"`
	Notes         string          `gorm:"size:1000" json:"notes,omitempty"`
	Cost          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"cost"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
