package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
)

// MenuHandler serves the sidebar contents for the signed-in role.
type MenuHandler struct{}

func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

type menuResponse struct {
	Items         []domain.NavItem `json:"items"`
	DashboardType string           `json:"dashboard_type"`
}

// Menu returns the visible nav items in declaration order.
func (h *MenuHandler) Menu(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	role := sess.User.Role
	return c.JSON(http.StatusOK, menuResponse{
		Items:         domain.VisibleItems(role),
		DashboardType: role.DashboardType(),
	})
}
