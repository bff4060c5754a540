package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUnknownResource):
		return http.StatusNotFound, "unknown resource"
	case errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest, "unknown action"
	}

	// Upstream failures keep their three-way split so the client can tell
	// a dead network from a backend fault from a rejected payload.
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		log.Warn().Err(netErr).Str("op", netErr.Op).Msg("upstream unreachable")
		return http.StatusBadGateway, "upstream unreachable"
	}
	var srvErr *domain.ServerError
	if errors.As(err, &srvErr) {
		if srvErr.Status >= 400 && srvErr.Status < 500 {
			msg := srvErr.Message
			if msg == "" {
				msg = "upstream rejected the request"
			}
			return srvErr.Status, msg
		}
		log.Error().Int("status", srvErr.Status).Str("message", srvErr.Message).Msg("upstream server error")
		return http.StatusBadGateway, "upstream error"
	}
	var payloadErr *domain.PayloadError
	if errors.As(err, &payloadErr) {
		return http.StatusUnprocessableEntity, payloadErr.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
