package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type OwnerLister interface {
	ListOwnerIDs(ctx context.Context) ([]uint, error)
}

// WarrantyScheduler periodically re-evaluates every owner's appliances so
// that status changes reach users who are not polling.
type WarrantyScheduler struct {
	owners   OwnerLister
	warranty *WarrantyService
	log      *zap.Logger
	interval time.Duration
}

func NewWarrantyScheduler(owners OwnerLister, warranty *WarrantyService, log *zap.Logger, interval time.Duration) *WarrantyScheduler {
	return &WarrantyScheduler{owners: owners, warranty: warranty, log: log, interval: interval}
}

// Run sweeps once immediately, then on every tick until ctx is canceled.
// A non-positive interval disables the loop.
func (s *WarrantyScheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("warranty sweep disabled")
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("warranty scheduler stopping")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep evaluates all owners once and reports how many transitions it saw.
func (s *WarrantyScheduler) Sweep(ctx context.Context) int {
	ids, err := s.owners.ListOwnerIDs(ctx)
	if err != nil {
		s.log.Error("ListOwnerIDs failed", zap.Error(err))
		return 0
	}

	today := s.warranty.Today()
	transitions := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return transitions
		}
		evs, err := s.warranty.EvaluateAll(ctx, id, today)
		if err != nil {
			s.log.Error("warranty sweep failed", zap.Uint("user_id", id), zap.Error(err))
		}
		for _, ev := range evs {
			if ev.Transitioned && !ev.SaveFailed {
				transitions++
			}
		}
	}
	s.log.Info("warranty sweep done", zap.Int("owners", len(ids)), zap.Int("transitions", transitions))
	return transitions
}
