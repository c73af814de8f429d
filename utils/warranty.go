package utils

import (
	"time"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

// ExpiringSoonDays is the inclusive window, in days before the end date,
// during which a warranty counts as expiring soon.
const ExpiringSoonDays = 31

// MaxWarrantyMonths bounds the declared warranty period.
const MaxWarrantyMonths = 1200

// DateOnly drops the clock, keeping the UTC calendar date of t. Dates are
// stored as UTC midnight, and drivers may hand them back in time.Local.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeWarrantyEndDate advances purchase by months calendar months. The day
// of month is clamped to the last day of the target month, so Jan 31 + 1 is
// Feb 28 (or 29). A zero period yields the purchase date itself.
func ComputeWarrantyEndDate(purchase time.Time, months int) time.Time {
	if months == 0 {
		return purchase
	}
	purchase = purchase.UTC()
	y, m, d := purchase.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	hh, mm, ss := purchase.Clock()
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, purchase.Nanosecond(), time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysLeft is end minus today in whole calendar days; negative once past.
func DaysLeft(today, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(today)) / (24 * time.Hour))
}

// ClassifyWarranty maps the remaining days to a status.
func ClassifyWarranty(today, end time.Time) models.WarrantyStatus {
	switch left := DaysLeft(today, end); {
	case left > ExpiringSoonDays:
		return models.WarrantyActive
	case left >= 0:
		return models.WarrantyExpiringSoon
	default:
		return models.WarrantyExpired
	}
}

// WarrantyMonthsBetween recovers the whole number of months between the
// purchase and end dates, for prefilling edit forms.
func WarrantyMonthsBetween(start, end time.Time) int {
	start, end = start.UTC(), end.UTC()
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	// A clamped month end (Jan 31 -> Feb 28) still counts as a full month.
	if end.Day() < start.Day() && end.Day() != daysInMonth(end.Year(), end.Month()) {
		months--
	}
	return max(0, months)
}
