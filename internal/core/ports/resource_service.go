package ports

import (
	"context"
	"encoding/json"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// ResourceService mediates between the UI-facing handlers and the upstream
// RPC API: reads go through the cache, mutations invalidate it and feed the
// activity trail.
type ResourceService interface {
	Read(ctx context.Context, sess *domain.Session, res domain.Resource, filter map[string]string) (json.RawMessage, error)
	Get(ctx context.Context, sess *domain.Session, res domain.Resource, id string) (json.RawMessage, error)
	Create(ctx context.Context, sess *domain.Session, res domain.Resource, payload json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, sess *domain.Session, res domain.Resource, id string, payload json.RawMessage) (json.RawMessage, error)
	Destroy(ctx context.Context, sess *domain.Session, res domain.Resource, id string) error
	Action(ctx context.Context, sess *domain.Session, res domain.Resource, action, id string, input json.RawMessage) (json.RawMessage, error)
}
