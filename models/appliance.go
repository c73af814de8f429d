package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appliance struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Brand string `gorm:"size:50" json:"brand"`
	Model string `gorm:"size:50" json:"model"`

	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`
	// WarrantyPeriodMonths is request/response only; the column is WarrantyEndDate.
	WarrantyPeriodMonths int       `gorm:"-" json:"warranty_period_months"`
	WarrantyEndDate      time.Time `gorm:"index" json:"warranty_end_date"`

	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"purchase_price"`
	ReceiptKey    string          `gorm:"size:255" json:"-"`
	ReceiptURL    string          `gorm:"-" json:"receipt_url,omitempty"`

	LastWarrantyStatus WarrantyStatus `gorm:"size:20" json:"last_warranty_status"`
	Status             WarrantyStatus `gorm:"-" json:"status"`
	DaysLeft           int            `gorm:"-" json:"days_left"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ServiceRecords []ServiceRecord `json:"service_records,omitempty"`
}
