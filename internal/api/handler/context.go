package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/dashboard-gateway/internal/api/middleware"
	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware and
// fast-fails when it is absent: presence proves the middleware ran, and the
// user snapshot inside is the only identity handlers may trust.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if sess == nil || sess.Token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return sess, nil
}
