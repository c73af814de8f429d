package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

type AlertStore interface {
	Create(ctx context.Context, a *models.Alert) error
}

// Pusher delivers a mobile push to the user's registered devices.
type Pusher interface {
	PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string)
}

// AlertDispatcher is the push channel for warranty notifications. Each
// notification is recorded as an Alert, broadcast to the user's open
// websocket sessions and, when configured, sent as a mobile push. Every leg
// is best-effort.
type AlertDispatcher struct {
	alerts AlertStore
	rt     *RealtimeHub
	push   Pusher
	log    *zap.Logger
}

func NewAlertDispatcher(alerts AlertStore, rt *RealtimeHub, push Pusher, log *zap.Logger) *AlertDispatcher {
	return &AlertDispatcher{alerts: alerts, rt: rt, push: push, log: log}
}

func (d *AlertDispatcher) Push(ctx context.Context, n Notification) {
	a := &models.Alert{
		UserID:      n.UserID,
		ApplianceID: n.ApplianceID,
		Type:        alertType(n.Status),
		Message:     n.Text,
	}
	if d.alerts != nil {
		if err := d.alerts.Create(ctx, a); err != nil {
			d.log.Warn("persist alert failed", zap.Uint("user_id", n.UserID), zap.Error(err))
		}
	}

	if d.rt != nil {
		delivered := d.rt.Broadcast(n.UserID, map[string]any{
			"kind":    "warranty.notification",
			"message": n.Text,
			"alert":   a,
		})
		d.log.Debug("warranty notification broadcast",
			zap.Uint("user_id", n.UserID),
			zap.Int("sessions", delivered),
		)
	}

	if d.push != nil {
		d.push.PushToUser(ctx, n.UserID, "Warranty alert", n.Text, map[string]string{
			"type":        a.Type,
			"alertId":     fmt.Sprintf("%d", a.ID),
			"applianceId": fmt.Sprintf("%d", n.ApplianceID),
		})
	}
}

func alertType(s models.WarrantyStatus) string {
	if s == models.WarrantyExpired {
		return models.AlertTypeExpired
	}
	return models.AlertTypeExpiringSoon
}
