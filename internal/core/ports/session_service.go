package ports

import (
	"context"
	"encoding/json"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// SessionService is the single source of truth for who is signed in and
// with what token.
type SessionService interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	// SignOut is idempotent: terminating an absent session is a no-op.
	SignOut(ctx context.Context, token string)
	// Lookup resolves a bearer token to a live session, restoring it from
	// durable storage when the in-memory registry lost it (process restart).
	// Expired sessions are purged and reported as domain.ErrSessionExpired.
	Lookup(ctx context.Context, token string) (*domain.Session, error)
	UpdateProfile(ctx context.Context, token string, payload json.RawMessage) (*domain.Session, error)
}
