package services

import (
	"context"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
)

const alertHistoryLimit = 50

// NotificationService backs the notification endpoints: on-demand checks,
// alert history and the mobile push switch.
type NotificationService struct {
	warranty *WarrantyService
	alerts   *repositories.AlertRepository
	push     *PushService
}

func NewNotificationService(warranty *WarrantyService, alerts *repositories.AlertRepository, push *PushService) *NotificationService {
	return &NotificationService{warranty: warranty, alerts: alerts, push: push}
}

// Check re-evaluates the user's appliances as of today.
func (s *NotificationService) Check(ctx context.Context, userID uint) ([]Evaluation, error) {
	return s.warranty.EvaluateAll(ctx, userID, s.warranty.Today())
}

func (s *NotificationService) History(ctx context.Context, userID uint) ([]models.Alert, error) {
	return s.alerts.ListByUser(ctx, userID, alertHistoryLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, alertID uint) error {
	return s.alerts.MarkRead(ctx, userID, alertID)
}

func (s *NotificationService) SetPushEnabled(ctx context.Context, userID uint, enabled bool) error {
	return s.push.SetEnabled(ctx, userID, enabled)
}
