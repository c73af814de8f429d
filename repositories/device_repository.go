package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Upsert stores the device keyed by (user, token hash), refreshing the
// endpoint when the token was registered before.
func (r *DeviceRepository) Upsert(ctx context.Context, dev *models.UserDevice) error {
	var existing models.UserDevice
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", dev.UserID, dev.TokenHash).
		First(&existing).Error
	switch {
	case err == nil:
		existing.EndpointARN = dev.EndpointARN
		existing.Platform = dev.Platform
		existing.UpdatedAt = time.Now()
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return err
		}
		*dev = existing
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		dev.Enabled = true
		return r.db.WithContext(ctx).Create(dev).Error
	default:
		return err
	}
}

func (r *DeviceRepository) ListEnabled(ctx context.Context, userID uint) ([]models.UserDevice, error) {
	var out []models.UserDevice
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ?", userID, true).
		Find(&out).Error
	return out, err
}

// SetEnabled toggles push delivery for all of the user's devices.
func (r *DeviceRepository) SetEnabled(ctx context.Context, userID uint, enabled bool) error {
	return r.db.WithContext(ctx).
		Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}
