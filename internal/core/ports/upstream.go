package ports

import (
	"context"
	"encoding/json"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// SignInResult is the backend's answer to a successful authentication.
// ExpiresIn is a TTL in seconds, only consulted when the token itself
// carries no exp claim.
type SignInResult struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	ExpiresIn int64       `json:"expires_in,omitempty"`
}

// AuthAPI is the slice of the upstream backend that issues and maintains
// identities.
type AuthAPI interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	// UpdateUser pushes profile changes and returns the canonical user
	// snapshot, which replaces the session's copy wholesale.
	UpdateUser(ctx context.Context, headers map[string]string, userID string, payload json.RawMessage) (domain.User, error)
}

// ResourceAPI performs one backend operation per call. Every call attaches
// the headers snapshot it is handed — taken from the session at call time,
// not at construction time.
type ResourceAPI interface {
	Read(ctx context.Context, headers map[string]string, res domain.Resource, filter map[string]string) (json.RawMessage, error)
	Create(ctx context.Context, headers map[string]string, res domain.Resource, payload json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, headers map[string]string, res domain.Resource, id string, payload json.RawMessage) (json.RawMessage, error)
	Destroy(ctx context.Context, headers map[string]string, res domain.Resource, id string) error
	Action(ctx context.Context, headers map[string]string, res domain.Resource, action, id string, input json.RawMessage) (json.RawMessage, error)
}
