package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Admin  bool
}

func (a Actor) owns(ownerID uint) bool {
	return a.Admin || a.UserID == ownerID
}

type ApplianceInput struct {
	Name                 string
	Brand                string
	Model                string
	PurchaseDate         time.Time
	WarrantyPeriodMonths int
	PurchasePrice        decimal.Decimal
	Receipt              *ReceiptUpload
	RemoveReceipt        bool
}

func (in *ApplianceInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	switch {
	case in.Name == "":
		return invalid("name", "please enter the appliance name")
	case len(in.Name) > 100:
		return invalid("name", "must be at most 100 characters")
	case len(in.Brand) > 50:
		return invalid("brand", "must be at most 50 characters")
	case len(in.Model) > 50:
		return invalid("model", "must be at most 50 characters")
	case in.PurchaseDate.IsZero():
		return invalid("purchase_date", "please select the purchase date")
	case in.WarrantyPeriodMonths < 0 || in.WarrantyPeriodMonths > utils.MaxWarrantyMonths:
		return invalid("warranty_period_months", "must be between 0 and %d months", utils.MaxWarrantyMonths)
	case in.PurchasePrice.IsNegative():
		return invalid("purchase_price", "must not be negative")
	}
	in.PurchaseDate = utils.DateOnly(in.PurchaseDate)
	return nil
}

type ApplianceService struct {
	repo     *repositories.ApplianceRepository
	receipts ReceiptStore
	warranty *WarrantyService
	log      *zap.Logger
}

func NewApplianceService(repo *repositories.ApplianceRepository, receipts ReceiptStore, warranty *WarrantyService, log *zap.Logger) *ApplianceService {
	return &ApplianceService{repo: repo, receipts: receipts, warranty: warranty, log: log}
}

// decorate fills the response-only fields against today.
func (s *ApplianceService) decorate(a *models.Appliance, today time.Time) {
	a.WarrantyPeriodMonths = utils.WarrantyMonthsBetween(a.PurchaseDate, a.WarrantyEndDate)
	a.Status = utils.ClassifyWarranty(today, a.WarrantyEndDate)
	a.DaysLeft = utils.DaysLeft(today, a.WarrantyEndDate)
	if a.ReceiptKey != "" && s.receipts != nil {
		a.ReceiptURL = s.receipts.URL(a.ReceiptKey)
	}
}

func (s *ApplianceService) decorateAll(list []models.Appliance) []models.Appliance {
	today := s.warranty.Today()
	for i := range list {
		s.decorate(&list[i], today)
	}
	return list
}

// List returns the caller's own appliances, newest first.
func (s *ApplianceService) List(ctx context.Context, actor Actor) ([]models.Appliance, error) {
	list, err := s.repo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(list), nil
}

// ListAll is the admin view over every user's appliances.
func (s *ApplianceService) ListAll(ctx context.Context) ([]models.Appliance, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(list), nil
}

func (s *ApplianceService) load(ctx context.Context, actor Actor, id uint) (*models.Appliance, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.owns(a.UserID) {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *ApplianceService) Get(ctx context.Context, actor Actor, id uint) (*models.Appliance, error) {
	a, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	s.decorate(a, s.warranty.Today())
	return a, nil
}

func (s *ApplianceService) Create(ctx context.Context, actor Actor, in ApplianceInput) (*models.Appliance, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	a := &models.Appliance{
		UserID:          actor.UserID,
		Name:            in.Name,
		Brand:           in.Brand,
		Model:           in.Model,
		PurchaseDate:    in.PurchaseDate,
		WarrantyEndDate: utils.ComputeWarrantyEndDate(in.PurchaseDate, in.WarrantyPeriodMonths),
		PurchasePrice:   in.PurchasePrice,
	}
	if in.Receipt != nil {
		key, err := s.storeReceipt(ctx, in.Receipt)
		if err != nil {
			return nil, err
		}
		a.ReceiptKey = key
	}

	today := s.warranty.Today()
	ev := s.warranty.Apply(a, today)
	if err := s.repo.Create(ctx, a); err != nil {
		s.discardReceipt(ctx, a.ReceiptKey)
		return nil, fmt.Errorf("create appliance: %w", err)
	}
	ev.ApplianceID = a.ID
	if ev.Notification != nil {
		ev.Notification.ApplianceID = a.ID
	}
	s.warranty.Dispatch(ctx, ev)

	s.decorate(a, today)
	s.log.Info("appliance created",
		zap.Uint("appliance_id", a.ID),
		zap.Uint("user_id", a.UserID),
		zap.Stringer("status", a.LastWarrantyStatus),
	)
	return a, nil
}

// Update rewrites the editable fields. The end date is always re-derived from
// the purchase date and period, and the status is re-evaluated.
func (s *ApplianceService) Update(ctx context.Context, actor Actor, id uint, in ApplianceInput) (*models.Appliance, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	a.Name = in.Name
	a.Brand = in.Brand
	a.Model = in.Model
	a.PurchaseDate = in.PurchaseDate
	a.WarrantyEndDate = utils.ComputeWarrantyEndDate(in.PurchaseDate, in.WarrantyPeriodMonths)
	a.PurchasePrice = in.PurchasePrice

	oldKey := a.ReceiptKey
	if in.RemoveReceipt {
		a.ReceiptKey = ""
	}
	if in.Receipt != nil {
		key, err := s.storeReceipt(ctx, in.Receipt)
		if err != nil {
			return nil, err
		}
		a.ReceiptKey = key
	}

	today := s.warranty.Today()
	ev := s.warranty.Apply(a, today)
	if err := s.repo.Update(ctx, a); err != nil {
		if a.ReceiptKey != oldKey {
			s.discardReceipt(ctx, a.ReceiptKey)
		}
		return nil, fmt.Errorf("update appliance: %w", err)
	}
	if oldKey != "" && oldKey != a.ReceiptKey {
		s.discardReceipt(ctx, oldKey)
	}
	s.warranty.Dispatch(ctx, ev)

	s.decorate(a, today)
	return a, nil
}

func (s *ApplianceService) Delete(ctx context.Context, actor Actor, id uint) error {
	a, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return err
	}
	s.discardReceipt(ctx, a.ReceiptKey)
	s.log.Info("appliance deleted", zap.Uint("appliance_id", a.ID), zap.Uint("by_user", actor.UserID))
	return nil
}

// Expiring lists the caller's appliances whose warranty ends within days.
func (s *ApplianceService) Expiring(ctx context.Context, actor Actor, days int) ([]models.Appliance, error) {
	if days <= 0 {
		days = utils.ExpiringSoonDays
	}
	list, err := s.repo.ListExpiringWithin(ctx, actor.UserID, s.warranty.Today(), days)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(list), nil
}

func (s *ApplianceService) Expired(ctx context.Context, actor Actor) ([]models.Appliance, error) {
	list, err := s.repo.ListExpired(ctx, actor.UserID, s.warranty.Today())
	if err != nil {
		return nil, err
	}
	return s.decorateAll(list), nil
}

func (s *ApplianceService) storeReceipt(ctx context.Context, r *ReceiptUpload) (string, error) {
	key, contentType, err := ValidateReceipt(r)
	if err != nil {
		return "", err
	}
	if s.receipts == nil {
		return "", fmt.Errorf("receipt storage is not configured")
	}
	if err := s.receipts.Put(ctx, key, contentType, r.Body, r.Size); err != nil {
		return "", fmt.Errorf("store receipt: %w", err)
	}
	return key, nil
}

func (s *ApplianceService) discardReceipt(ctx context.Context, key string) {
	if key == "" || s.receipts == nil {
		return
	}
	if err := s.receipts.Delete(ctx, key); err != nil {
		s.log.Warn("delete receipt failed", zap.String("key", key), zap.Error(err))
	}
}
