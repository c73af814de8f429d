package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, a *models.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListByUser returns the newest alerts first, at most limit rows.
func (r *AlertRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Alert, error) {
	var out []models.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkRead flags one of the user's alerts as read.
func (r *AlertRepository) MarkRead(ctx context.Context, userID, alertID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
