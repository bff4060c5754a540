package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

type stubSessionService struct {
	lookupFn func(ctx context.Context, token string) (*domain.Session, error)
}

func (s *stubSessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return nil, nil
}

func (s *stubSessionService) SignOut(ctx context.Context, token string) {}

func (s *stubSessionService) Lookup(ctx context.Context, token string) (*domain.Session, error) {
	return s.lookupFn(ctx, token)
}

func (s *stubSessionService) UpdateProfile(ctx context.Context, token string, payload json.RawMessage) (*domain.Session, error) {
	return nil, nil
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubSessionService{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubSessionService{})
	handler := mw(func(c echo.Context) error { return nil })

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_ExpiredSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubSessionService{
		lookupFn: func(ctx context.Context, token string) (*domain.Session, error) {
			return nil, domain.ErrSessionExpired
		},
	}
	handler := Auth(stub)(func(c echo.Context) error { return nil })

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "session expired" {
		t.Fatalf("expected expiry message, got %v", he.Message)
	}
}

func TestAuth_InjectsSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	want := &domain.Session{
		Token:     "good-token",
		User:      domain.User{ID: "u1", Role: domain.RoleAdmin},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	stub := &stubSessionService{
		lookupFn: func(ctx context.Context, token string) (*domain.Session, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token: %q", token)
			}
			return want, nil
		},
	}

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		got, _ := c.Get(SessionKey).(*domain.Session)
		if got != want {
			t.Fatalf("session not injected into context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}
