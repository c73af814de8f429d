package models

import "time"

const (
	AlertTypeExpiringSoon = "expiring_soon"
	AlertTypeExpired      = "expired"
)

type Alert struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	ApplianceID uint      `gorm:"index" json:"appliance_id,omitempty"`
	Type        string    `gorm:"size:20" json:"type"` // "expiring_soon" | "expired"
	Message     string    `gorm:"type:text" json:"message"`
	Read        bool      `gorm:"default:false" json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
