package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

type ApplianceRepository struct {
	db *gorm.DB
}

func NewApplianceRepository(db *gorm.DB) *ApplianceRepository {
	return &ApplianceRepository{db: db}
}

// ListAll returns every appliance with its owner, newest first.
func (r *ApplianceRepository) ListAll(ctx context.Context) ([]models.Appliance, error) {
	var out []models.Appliance
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApplianceRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Appliance, error) {
	var out []models.Appliance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListOwnerIDs returns the distinct users that own at least one appliance.
func (r *ApplianceRepository) ListOwnerIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Appliance{}).
		Distinct("user_id").
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

// GetByID loads the appliance with its owner and service records.
func (r *ApplianceRepository) GetByID(ctx context.Context, id uint) (*models.Appliance, error) {
	var a models.Appliance
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ServiceRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("service_date DESC, id DESC")
		}).
		First(&a, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *ApplianceRepository) Create(ctx context.Context, a *models.Appliance) error {
	return translate(r.db.WithContext(ctx).Omit("User", "ServiceRecords").Create(a).Error)
}

// Update writes the editable columns plus the derived end date and status.
func (r *ApplianceRepository) Update(ctx context.Context, a *models.Appliance) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appliance{ID: a.ID}).
		Select("name", "brand", "model", "purchase_date", "warranty_end_date",
			"purchase_price", "receipt_key", "last_warranty_status", "updated_at").
		Updates(a)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Save persists the evaluator's status write-back only.
func (r *ApplianceRepository) Save(ctx context.Context, a *models.Appliance) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appliance{ID: a.ID}).
		Update("last_warranty_status", a.LastWarrantyStatus)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the appliance and its service records.
func (r *ApplianceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appliance_id = ?", id).Delete(&models.ServiceRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Appliance{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListExpiringWithin returns the owner's appliances whose warranty ends in
// [today, today+days], soonest first.
func (r *ApplianceRepository) ListExpiringWithin(ctx context.Context, ownerID uint, today time.Time, days int) ([]models.Appliance, error) {
	from := dayStart(today)
	to := from.AddDate(0, 0, days+1)
	var out []models.Appliance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND warranty_end_date >= ? AND warranty_end_date < ?", ownerID, from, to).
		Order("warranty_end_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListExpired returns the owner's appliances whose warranty ended before today.
func (r *ApplianceRepository) ListExpired(ctx context.Context, ownerID uint, today time.Time) ([]models.Appliance, error) {
	var out []models.Appliance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND warranty_end_date < ?", ownerID, dayStart(today)).
		Order("warranty_end_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApplianceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Appliance{}).Count(&n).Error
	return n, err
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
