package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

// ApplianceStore is the slice of appliance persistence the evaluator needs.
type ApplianceStore interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Appliance, error)
	Save(ctx context.Context, a *models.Appliance) error
}

// Notifier delivers a notification to the owning user. Delivery is
// best-effort: implementations log their own failures and never report them.
type Notifier interface {
	Push(ctx context.Context, n Notification)
}

// Notification is one user-facing warranty message.
type Notification struct {
	UserID      uint                  `json:"user_id"`
	ApplianceID uint                  `json:"appliance_id"`
	Status      models.WarrantyStatus `json:"status"`
	Text        string                `json:"text"`
}

// Evaluation is the outcome of classifying one appliance on one day.
type Evaluation struct {
	ApplianceID  uint                  `json:"appliance_id"`
	Name         string                `json:"name"`
	Previous     models.WarrantyStatus `json:"previous_status"`
	Status       models.WarrantyStatus `json:"status"`
	DaysLeft     int                   `json:"days_left"`
	Transitioned bool                  `json:"transitioned"`
	Notification *Notification         `json:"notification,omitempty"`
	// SaveFailed marks a status that could not be persisted; its
	// notification was not sent.
	SaveFailed   bool                  `json:"save_failed,omitempty"`
}

// EvaluateWarranty classifies a against today and decides whether the change
// is worth a notification. Moving into Active is always silent.
func EvaluateWarranty(a *models.Appliance, today time.Time) Evaluation {
	status := utils.ClassifyWarranty(today, a.WarrantyEndDate)
	ev := Evaluation{
		ApplianceID:  a.ID,
		Name:         a.Name,
		Previous:     a.LastWarrantyStatus,
		Status:       status,
		DaysLeft:     utils.DaysLeft(today, a.WarrantyEndDate),
		Transitioned: a.LastWarrantyStatus != status,
	}
	if ev.Transitioned && status != models.WarrantyActive {
		ev.Notification = &Notification{
			UserID:      a.UserID,
			ApplianceID: a.ID,
			Status:      status,
			Text:        notificationText(a.Name, status),
		}
	}
	return ev
}

func notificationText(name string, status models.WarrantyStatus) string {
	if status == models.WarrantyExpired {
		return fmt.Sprintf("%s warranty has expired!", name)
	}
	return fmt.Sprintf("%s warranty is expiring soon!", name)
}

// WarrantyService evaluates stored appliances and dispatches the resulting notifications.
type WarrantyService struct {
	store    ApplianceStore
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewWarrantyService(store ApplianceStore, notifier Notifier, log *zap.Logger) *WarrantyService {
	return &WarrantyService{store: store, notifier: notifier, log: log, now: time.Now}
}

// Today is the current UTC calendar day.
func (s *WarrantyService) Today() time.Time {
	return utils.DateOnly(s.now())
}

// Apply evaluates a in place: the new status is written onto the record and
// its view fields. Persisting it is up to the caller.
func (s *WarrantyService) Apply(a *models.Appliance, today time.Time) Evaluation {
	ev := EvaluateWarranty(a, today)
	a.LastWarrantyStatus = ev.Status
	a.Status = ev.Status
	a.DaysLeft = ev.DaysLeft
	return ev
}

// Dispatch hands the evaluation's notification, if any, to the push channel.
func (s *WarrantyService) Dispatch(ctx context.Context, ev Evaluation) {
	if ev.Notification == nil || s.notifier == nil {
		return
	}
	s.notifier.Push(ctx, *ev.Notification)
}

// EvaluateAll re-evaluates every appliance the user owns, persists each new
// status and dispatches the resulting notifications. A failed save skips that
// appliance's notification and is reported with SaveFailed; the remaining
// appliances are still evaluated and the failures are returned together.
func (s *WarrantyService) EvaluateAll(ctx context.Context, userID uint, today time.Time) ([]Evaluation, error) {
	appliances, err := s.store.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appliances: %w", err)
	}

	var errs error
	out := make([]Evaluation, 0, len(appliances))
	for i := range appliances {
		a := &appliances[i]
		ev := s.Apply(a, today)
		if ev.Transitioned {
			if err := s.store.Save(ctx, a); err != nil {
				s.log.Warn("save warranty status failed",
					zap.Uint("appliance_id", a.ID),
					zap.Error(err),
				)
				errs = multierr.Append(errs, fmt.Errorf("appliance %d: %w", a.ID, err))
				ev.SaveFailed = true
				ev.Notification = nil
				out = append(out, ev)
				continue
			}
		}
		s.Dispatch(ctx, ev)
		out = append(out, ev)
	}
	return out, errs
}
