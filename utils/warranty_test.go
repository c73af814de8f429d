package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeWarrantyEndDate(t *testing.T) {
	tests := []struct {
		name     string
		purchase time.Time
		months   int
		want     time.Time
	}{
		{"zero period keeps purchase date", date(2024, time.March, 15), 0, date(2024, time.March, 15)},
		{"one year", date(2024, time.January, 1), 12, date(2025, time.January, 1)},
		{"clamps to february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamps to leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamps to 30 day month", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"crosses year boundary", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"max period", date(2000, time.February, 29), 1200, date(2100, time.February, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeWarrantyEndDate(tt.purchase, tt.months))
		})
	}
}

func TestComputeWarrantyEndDate_ZeroReturnsInputUnchanged(t *testing.T) {
	withClock := time.Date(2024, time.June, 3, 14, 30, 5, 42, time.UTC)
	assert.True(t, withClock.Equal(ComputeWarrantyEndDate(withClock, 0)))
}

func TestClassifyWarranty_Boundaries(t *testing.T) {
	end := date(2025, time.January, 1)
	tests := []struct {
		daysLeft int
		want     models.WarrantyStatus
	}{
		{32, models.WarrantyActive},
		{31, models.WarrantyExpiringSoon},
		{12, models.WarrantyExpiringSoon},
		{0, models.WarrantyExpiringSoon},
		{-1, models.WarrantyExpired},
		{-400, models.WarrantyExpired},
	}
	for _, tt := range tests {
		today := end.AddDate(0, 0, -tt.daysLeft)
		assert.Equal(t, tt.daysLeft, DaysLeft(today, end))
		assert.Equal(t, tt.want, ClassifyWarranty(today, end), "daysLeft=%d", tt.daysLeft)
	}
}

func TestClassifyWarranty_IgnoresClock(t *testing.T) {
	end := date(2025, time.January, 1)
	lateToday := time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysLeft(lateToday, end))
	assert.Equal(t, models.WarrantyExpiringSoon, ClassifyWarranty(lateToday, end))
}

func TestWarrantyDates_ReadBackInLocalZone(t *testing.T) {
	pacific := time.FixedZone("PST", -8*3600)
	tokyo := time.FixedZone("JST", 9*3600)
	end := date(2025, time.January, 1)
	today := date(2024, time.December, 20)

	for _, loc := range []*time.Location{pacific, tokyo} {
		assert.Equal(t, 12, DaysLeft(today, end.In(loc)), "zone=%s", loc)
		assert.Equal(t, 12, DaysLeft(today.In(loc), end), "zone=%s", loc)

		boundary := today.AddDate(0, 0, 32)
		assert.Equal(t, models.WarrantyActive, ClassifyWarranty(today, boundary.In(loc)), "zone=%s", loc)
		assert.Equal(t, models.WarrantyExpiringSoon, ClassifyWarranty(today, today.In(loc)), "zone=%s", loc)

		got := ComputeWarrantyEndDate(date(2024, time.January, 31).In(loc), 1)
		assert.Equal(t, date(2024, time.February, 29), got, "zone=%s", loc)
		assert.Equal(t, 1, WarrantyMonthsBetween(date(2024, time.January, 31).In(loc), got.In(loc)), "zone=%s", loc)
	}
}

func TestClassifyWarranty_ZeroPeriodNeverActive(t *testing.T) {
	purchase := date(2024, time.May, 10)
	end := ComputeWarrantyEndDate(purchase, 0)

	assert.Equal(t, models.WarrantyExpiringSoon, ClassifyWarranty(purchase, end))
	assert.Equal(t, models.WarrantyExpired, ClassifyWarranty(purchase.AddDate(0, 0, 1), end))
	assert.Equal(t, models.WarrantyExpired, ClassifyWarranty(purchase.AddDate(3, 0, 0), end))
}

func TestWarrantyMonthsBetween(t *testing.T) {
	assert.Equal(t, 12, WarrantyMonthsBetween(date(2024, time.January, 1), date(2025, time.January, 1)))
	assert.Equal(t, 0, WarrantyMonthsBetween(date(2024, time.January, 1), date(2024, time.January, 1)))
	assert.Equal(t, 0, WarrantyMonthsBetween(date(2024, time.January, 10), date(2023, time.January, 1)))
	assert.Equal(t, 1, WarrantyMonthsBetween(date(2023, time.January, 31), date(2023, time.February, 28)))
	assert.Equal(t, 0, WarrantyMonthsBetween(date(2023, time.January, 15), date(2023, time.February, 14)))

	for _, months := range []int{1, 6, 13, 24, 60} {
		start := date(2024, time.August, 31)
		assert.Equal(t, months, WarrantyMonthsBetween(start, ComputeWarrantyEndDate(start, months)), "months=%d", months)
	}
}
