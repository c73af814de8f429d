package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

type ServiceRecordRepository struct {
	db *gorm.DB
}

func NewServiceRecordRepository(db *gorm.DB) *ServiceRecordRepository {
	return &ServiceRecordRepository{db: db}
}

func (r *ServiceRecordRepository) ListByAppliance(ctx context.Context, applianceID uint) ([]models.ServiceRecord, error) {
	var out []models.ServiceRecord
	err := r.db.WithContext(ctx).
		Where("appliance_id = ?", applianceID).
		Order("service_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ServiceRecordRepository) GetByID(ctx context.Context, id uint) (*models.ServiceRecord, error) {
	var rec models.ServiceRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *ServiceRecordRepository) Create(ctx context.Context, rec *models.ServiceRecord) error {
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *ServiceRecordRepository) Update(ctx context.Context, rec *models.ServiceRecord) error {
	res := r.db.WithContext(ctx).
		Model(&models.ServiceRecord{ID: rec.ID}).
		Select("service_date", "vendor_name", "vendor_contact", "notes", "cost", "updated_at").
		Updates(rec)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRecordRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ServiceRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRecordRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ServiceRecord{}).Count(&n).Error
	return n, err
}
