package ports

import (
	"context"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// ActivityRepository persists the mutation audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	Recent(ctx context.Context, limit int64) ([]domain.ActivityEvent, error)
	RecentByActor(ctx context.Context, actorID string, limit int64) ([]domain.ActivityEvent, error)
}

// ActivitySink accepts events for asynchronous recording. Enqueueing must
// never block a mutation response.
type ActivitySink interface {
	Enqueue(event domain.ActivityEvent)
}

// ActivityFeed serves the recent-activity block of the overview page.
type ActivityFeed interface {
	Feed(ctx context.Context, user domain.User, limit int64) ([]domain.ActivityEvent, error)
}
