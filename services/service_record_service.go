package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

var vendorContactRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type ServiceRecordInput struct {
	ServiceDate   time.Time
	VendorName    string
	VendorContact string
	Notes         string
	Cost          decimal.Decimal
}

func (in *ServiceRecordInput) validate(purchase, today time.Time) error {
	in.VendorName = strings.TrimSpace(in.VendorName)
	in.VendorContact = strings.TrimSpace(in.VendorContact)
	in.Notes = strings.TrimSpace(in.Notes)
	in.ServiceDate = utils.DateOnly(in.ServiceDate)

	switch {
	case in.ServiceDate.IsZero():
		return invalid("service_date", "is required")
	case in.ServiceDate.After(today):
		return invalid("service_date", "cannot be in the future")
	case in.ServiceDate.Before(utils.DateOnly(purchase)):
		return invalid("service_date", "cannot be earlier than appliance purchase date (%s)", purchase.Format(time.DateOnly))
	case len(in.VendorName) < 2 || len(in.VendorName) > 100:
		return invalid("vendor_name", "must be between 2 and 100 characters")
	case !vendorContactRe.MatchString(in.VendorContact):
		return invalid("vendor_contact", "enter a valid contact number (10-15 digits, optional + at start)")
	case len(in.Notes) > 500:
		return invalid("notes", "cannot exceed 500 characters")
	case !in.Cost.IsPositive():
		return invalid("cost", "must be greater than 0")
	}
	return nil
}

type ServiceRecordService struct {
	records    *repositories.ServiceRecordRepository
	appliances *repositories.ApplianceRepository
	now        func() time.Time
}

func NewServiceRecordService(records *repositories.ServiceRecordRepository, appliances *repositories.ApplianceRepository) *ServiceRecordService {
	return &ServiceRecordService{records: records, appliances: appliances, now: time.Now}
}

func (s *ServiceRecordService) appliance(ctx context.Context, actor Actor, applianceID uint) (*models.Appliance, error) {
	a, err := s.appliances.GetByID(ctx, applianceID)
	if err != nil {
		return nil, err
	}
	if !actor.owns(a.UserID) {
		return nil, ErrForbidden
	}
	return a, nil
}

// record loads a service record that belongs to applianceID.
func (s *ServiceRecordService) record(ctx context.Context, applianceID, id uint) (*models.ServiceRecord, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.ApplianceID != applianceID {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *ServiceRecordService) List(ctx context.Context, actor Actor, applianceID uint) ([]models.ServiceRecord, error) {
	if _, err := s.appliance(ctx, actor, applianceID); err != nil {
		return nil, err
	}
	return s.records.ListByAppliance(ctx, applianceID)
}

func (s *ServiceRecordService) Get(ctx context.Context, actor Actor, applianceID, id uint) (*models.ServiceRecord, error) {
	if _, err := s.appliance(ctx, actor, applianceID); err != nil {
		return nil, err
	}
	return s.record(ctx, applianceID, id)
}

func (s *ServiceRecordService) Create(ctx context.Context, actor Actor, applianceID uint, in ServiceRecordInput) (*models.ServiceRecord, error) {
	a, err := s.appliance(ctx, actor, applianceID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(a.PurchaseDate, utils.DateOnly(s.now())); err != nil {
		return nil, err
	}
	rec := &models.ServiceRecord{
		ApplianceID:   a.ID,
		ServiceDate:   in.ServiceDate,
		VendorName:    in.VendorName,
		VendorContact: in.VendorContact,
		Notes:         in.Notes,
		Cost:          in.Cost,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ServiceRecordService) Update(ctx context.Context, actor Actor, applianceID, id uint, in ServiceRecordInput) (*models.ServiceRecord, error) {
	a, err := s.appliance(ctx, actor, applianceID)
	if err != nil {
		return nil, err
	}
	rec, err := s.record(ctx, applianceID, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(a.PurchaseDate, utils.DateOnly(s.now())); err != nil {
		return nil, err
	}
	rec.ServiceDate = in.ServiceDate
	rec.VendorName = in.VendorName
	rec.VendorContact = in.VendorContact
	rec.Notes = in.Notes
	rec.Cost = in.Cost
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ServiceRecordService) Delete(ctx context.Context, actor Actor, applianceID, id uint) error {
	if _, err := s.appliance(ctx, actor, applianceID); err != nil {
		return err
	}
	if _, err := s.record(ctx, applianceID, id); err != nil {
		return err
	}
	return s.records.Delete(ctx, id)
}
