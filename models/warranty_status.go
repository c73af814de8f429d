package models

import (
	"database/sql/driver"
	"fmt"
)

// WarrantyStatus is the classification of an appliance's warranty window
// relative to a given day. The zero value means the appliance has never
// been evaluated.
type WarrantyStatus string

const (
	WarrantyUnset        WarrantyStatus = ""
	WarrantyActive       WarrantyStatus = "Active"
	WarrantyExpiringSoon WarrantyStatus = "Expiring Soon"
	WarrantyExpired      WarrantyStatus = "Expired"
)

func (s WarrantyStatus) Valid() bool {
	switch s {
	case WarrantyUnset, WarrantyActive, WarrantyExpiringSoon, WarrantyExpired:
		return true
	}
	return false
}

func (s WarrantyStatus) String() string {
	if s == WarrantyUnset {
		return "unset"
	}
	return string(s)
}

// ParseWarrantyStatus accepts only the stored labels; anything else is drift.
func ParseWarrantyStatus(v string) (WarrantyStatus, error) {
	s := WarrantyStatus(v)
	if !s.Valid() {
		return WarrantyUnset, fmt.Errorf("unknown warranty status %q", v)
	}
	return s, nil
}

func (s WarrantyStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown warranty status %q", string(s))
	}
	return string(s), nil
}

func (s *WarrantyStatus) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = WarrantyUnset
		return nil
	case string:
		parsed, err := ParseWarrantyStatus(v)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case []byte:
		parsed, err := ParseWarrantyStatus(string(v))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into WarrantyStatus", src)
	}
}
