package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// resourceGates lists the resources whose routes demand a capability on top
// of a valid session. Resources absent from the table rely on the backend's
// own authorization; the gate here is defence in depth for the ones whose
// pages are hidden from the menu.
var resourceGates = map[domain.Resource]func(domain.Role) bool{
	domain.ResourceCompany:      domain.Role.CanManageCompanies,
	domain.ResourceFormResponse: domain.Role.CanManageCompanies,
	domain.ResourceInvitation:   domain.Role.CanInviteUsers,
}

// ResourceGate enforces the per-resource capability table on the generic
// resource routes.
func ResourceGate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, gated := resourceGates[domain.Resource(c.Param("resource"))]
			if !gated {
				return next(c)
			}
			sess, _ := c.Get(SessionKey).(*domain.Session)
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !allowed(sess.User.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// Capability gates a route on a role predicate. The predicate is one of the
// domain's capability checks, so the route table and the menu share the same
// access rules.
func Capability(allowed func(domain.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := c.Get(SessionKey).(*domain.Session)
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !allowed(sess.User.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
