package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/siteflow/dashboard-gateway/internal/api/metrics"
	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

// defaultTokenTTL covers tokens that carry no exp claim and arrive without
// an expires_in hint.
const defaultTokenTTL = 24 * time.Hour

// liveSession pairs an in-memory session with its armed expiry timer.
type liveSession struct {
	sess  *domain.Session
	timer *time.Timer
}

// SessionService implements ports.SessionService: an in-memory registry of
// live sessions backed by a durable store, with automatic termination at
// expiry minus skew.
type SessionService struct {
	auth  ports.AuthAPI
	store ports.SessionStore
	log   zerolog.Logger
	now   func() time.Time

	mu     sync.RWMutex
	active map[string]*liveSession
}

func NewSessionService(auth ports.AuthAPI, store ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		auth:   auth,
		store:  store,
		log:    log,
		now:    time.Now,
		active: make(map[string]*liveSession),
	}
}

// SignIn authenticates against the upstream backend and registers the
// resulting session. A failed attempt leaves every existing session
// untouched.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	res, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		outcome := "error"
		var netErr *domain.NetworkError
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			outcome = "invalid_credentials"
		case errors.As(err, &netErr):
			outcome = "network"
		}
		metrics.SignInsTotal.WithLabelValues(outcome).Inc()
		return nil, err
	}

	now := s.now()
	expiresAt, ok := domain.TokenExpiry(res.Token)
	if !ok {
		if res.ExpiresIn > 0 {
			expiresAt = now.Add(time.Duration(res.ExpiresIn) * time.Second)
		} else {
			expiresAt = now.Add(defaultTokenTTL)
		}
	}

	sess := &domain.Session{Token: res.Token, User: res.User, ExpiresAt: expiresAt}
	if err := s.store.Save(ctx, sess); err != nil {
		// The session still works for this process lifetime; it just won't
		// survive a restart.
		s.log.Warn().Err(err).Str("user", sess.User.Email).Msg("session persist failed")
	}

	s.register(sess)
	metrics.SignInsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("user", sess.User.Email).
		Str("role", string(sess.User.Role)).
		Time("expires_at", sess.ExpiresAt).
		Msg("session opened")
	return sess, nil
}

// SignOut terminates a session. Safe to call for tokens that are unknown or
// already terminated.
func (s *SessionService) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	if live, ok := s.active[token]; ok {
		live.timer.Stop()
		delete(s.active, token)
	}
	metrics.SessionsActive.Set(float64(len(s.active)))
	s.mu.Unlock()

	if err := s.store.Delete(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("session store delete failed")
	}
}

// Lookup resolves a bearer token to a live session, falling back to the
// durable store after a restart. An expired session — wherever it is found —
// is purged and reported as ErrSessionExpired, exactly as if it never
// existed.
func (s *SessionService) Lookup(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionExpired
	}

	s.mu.RLock()
	live, ok := s.active[token]
	s.mu.RUnlock()
	if ok {
		if !live.sess.Valid(s.now()) {
			s.SignOut(ctx, token)
			return nil, domain.ErrSessionExpired
		}
		return live.sess, nil
	}

	sess, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, &domain.NetworkError{Op: "session load", Err: err}
	}
	if sess == nil {
		return nil, domain.ErrSessionExpired
	}
	if !sess.Valid(s.now()) {
		if err := s.store.Delete(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("purge of expired session failed")
		}
		return nil, domain.ErrSessionExpired
	}

	s.register(sess)
	s.log.Debug().Str("user", sess.User.Email).Msg("session restored from store")
	return sess, nil
}

// UpdateProfile pushes profile changes upstream and replaces the session's
// user snapshot wholesale with the canonical result.
func (s *SessionService) UpdateProfile(ctx context.Context, token string, payload json.RawMessage) (*domain.Session, error) {
	sess, err := s.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.auth.UpdateUser(ctx, sess.AuthHeaders(), sess.User.ID, payload)
	if err != nil {
		return nil, err
	}

	updated := sess.WithUser(user)
	if err := s.store.Save(ctx, &updated); err != nil {
		s.log.Warn().Err(err).Str("user", user.Email).Msg("session persist failed")
	}
	s.register(&updated)
	return &updated, nil
}

// register installs (or replaces) the in-memory entry for a session and
// arms its expiry timer for the remaining lifetime.
func (s *SessionService) register(sess *domain.Session) {
	fireIn := sess.ExpiresAt.Add(-domain.ExpirySkew).Sub(s.now())
	if fireIn < 0 {
		fireIn = 0
	}
	token := sess.Token

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.active[token]; ok {
		prev.timer.Stop()
	}
	s.active[token] = &liveSession{
		sess: sess,
		timer: time.AfterFunc(fireIn, func() {
			s.expire(token)
		}),
	}
	metrics.SessionsActive.Set(float64(len(s.active)))
}

// expire is the timer-driven equivalent of SignOut.
func (s *SessionService) expire(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.mu.Lock()
	live, ok := s.active[token]
	if ok {
		delete(s.active, token)
	}
	metrics.SessionsActive.Set(float64(len(s.active)))
	s.mu.Unlock()

	if err := s.store.Delete(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("purge of expired session failed")
	}
	if ok {
		s.log.Info().Str("user", live.sess.User.Email).Msg("session expired, signed out")
	}
}
