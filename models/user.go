package models

import "time"

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	FullName      string    `gorm:"size:100" json:"full_name"`
	Address       string    `gorm:"size:200" json:"address"`
	PhoneNumber   string    `gorm:"size:20" json:"phone_number"`
	Role          Role      `gorm:"size:20;not null;default:'User'" json:"role"`
	ResetToken    string    `gorm:"size:64;index" json:"-"`
	ResetTokenExp time.Time `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the Admin capability.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
