package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

// ActivityHandler serves the mutation trail to staff. Customers see their
// own slice embedded in the overview page instead.
type ActivityHandler struct {
	feed ports.ActivityFeed
}

func NewActivityHandler(feed ports.ActivityFeed) *ActivityHandler {
	return &ActivityHandler{feed: feed}
}

// Recent handles GET /api/activity.
func (h *ActivityHandler) Recent(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	events, err := h.feed.Feed(c.Request().Context(), sess.User, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"events": events})
}
