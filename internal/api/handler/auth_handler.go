package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token     string      `json:"token,omitempty"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// SignIn authenticates against the upstream backend and opens a session.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.sessions.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Token:     sess.Token,
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt,
	})
}

// SignOut terminates the current session. Idempotent: a token that no
// longer names a session still answers 204.
func (h *AuthHandler) SignOut(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	h.sessions.SignOut(c.Request().Context(), sess.Token)
	return c.NoContent(http.StatusNoContent)
}

// Session returns the signed-in user and the session expiry.
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt,
	})
}

// UpdateProfile pushes profile changes upstream and returns the refreshed
// session snapshot.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var payload json.RawMessage
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.sessions.UpdateProfile(c.Request().Context(), sess.Token, payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:      updated.User,
		ExpiresAt: updated.ExpiresAt,
	})
}
