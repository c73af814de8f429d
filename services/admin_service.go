package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
)

type Dashboard struct {
	TotalUsers          int64              `json:"total_users"`
	TotalAppliances     int64              `json:"total_appliances"`
	TotalServiceRecords int64              `json:"total_service_records"`
	Users               []models.User      `json:"users"`
	Appliances          []models.Appliance `json:"appliances"`
}

// AdminService backs the administrator area. Callers must hold the Admin
// capability; the router enforces it.
type AdminService struct {
	users      *repositories.UserRepository
	appliances *ApplianceService
	applRepo   *repositories.ApplianceRepository
	records    *repositories.ServiceRecordRepository
	receipts   ReceiptStore
	log        *zap.Logger
}

func NewAdminService(
	users *repositories.UserRepository,
	appliances *ApplianceService,
	applRepo *repositories.ApplianceRepository,
	records *repositories.ServiceRecordRepository,
	receipts ReceiptStore,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		users:      users,
		appliances: appliances,
		applRepo:   applRepo,
		records:    records,
		receipts:   receipts,
		log:        log,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalUsers, err = s.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalAppliances, err = s.applRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalServiceRecords, err = s.records.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Users, err = s.users.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Appliances, err = s.appliances.ListAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *AdminService) Appliance(ctx context.Context, id uint) (*models.Appliance, error) {
	return s.appliances.Get(ctx, Actor{Admin: true}, id)
}

func (s *AdminService) DeleteAppliance(ctx context.Context, adminID, id uint) error {
	return s.appliances.Delete(ctx, Actor{UserID: adminID, Admin: true}, id)
}

// DeleteUser removes the user and everything they own. Admins cannot delete
// their own account here.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID uint) error {
	if adminID == userID {
		return invalid("user_id", "cannot delete your own account")
	}
	keys, err := s.users.Delete(ctx, userID)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if s.receipts == nil {
			break
		}
		if err := s.receipts.Delete(ctx, key); err != nil {
			s.log.Warn("delete receipt failed", zap.String("key", key), zap.Error(err))
		}
	}
	s.log.Info("user deleted", zap.Uint("user_id", userID), zap.Uint("by_admin", adminID))
	return nil
}
