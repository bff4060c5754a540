package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

// Storage layout, one triplet per session:
//
//	auth_token:<token>       → the bearer token
//	user:<token>             → JSON user snapshot
//	token_expires_at:<token> → unix seconds
//
// All three carry a Redis TTL ending at the session's expiry, so even a
// gateway that dies without cleaning up leaves nothing behind. A triplet
// with any key missing counts as no session.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wraps a connected Redis client.
func NewSessionStore(client *redis.Client) ports.SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil // already dead, nothing worth persisting
	}

	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tokenKey(sess.Token), sess.Token, ttl)
		pipe.Set(ctx, userKey(sess.Token), userJSON, ttl)
		pipe.Set(ctx, expiryKey(sess.Token), strconv.FormatInt(sess.ExpiresAt.Unix(), 10), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, token string) (*domain.Session, error) {
	values, err := s.client.MGet(ctx, tokenKey(token), userKey(token), expiryKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	for _, v := range values {
		if v == nil {
			return nil, nil
		}
	}

	userJSON, _ := values[1].(string)
	var user domain.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		// A corrupt snapshot is as good as no session; erase the triplet.
		_ = s.Delete(ctx, token)
		return nil, nil
	}

	expiryRaw, _ := values[2].(string)
	expiryUnix, err := strconv.ParseInt(expiryRaw, 10, 64)
	if err != nil {
		_ = s.Delete(ctx, token)
		return nil, nil
	}

	return &domain.Session{
		Token:     token,
		User:      user,
		ExpiresAt: time.Unix(expiryUnix, 0),
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, tokenKey(token), userKey(token), expiryKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func tokenKey(token string) string  { return "auth_token:" + token }
func userKey(token string) string   { return "user:" + token }
func expiryKey(token string) string { return "token_expires_at:" + token }
