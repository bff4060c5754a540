package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/siteflow/dashboard-gateway/internal/api/metrics"
	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

// ActivityService persists dequeued activity events and serves the feeds
// shown on the overview page.
type ActivityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Process stamps and stores one event. Called by the dispatcher workers.
func (s *ActivityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.ActivityEventsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.ActivityEventsTotal.WithLabelValues("stored").Inc()
	return nil
}

// Feed returns the most recent events: the global trail for staff who see
// every customer, otherwise the actor's own.
func (s *ActivityService) Feed(ctx context.Context, user domain.User, limit int64) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	if user.Role.CanViewAllCustomers() {
		return s.repo.Recent(ctx, limit)
	}
	return s.repo.RecentByActor(ctx, user.ID, limit)
}
