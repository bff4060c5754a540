package ports

import (
	"context"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// SessionStore is the durable side of the session registry. Absence of a
// session is reported as (nil, nil), never as an error — a missing entry
// means "no session".
type SessionStore interface {
	Save(ctx context.Context, sess *domain.Session) error
	Load(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
