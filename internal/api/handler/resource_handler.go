package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

// ResourceHandler exposes the generic resource surface: cached reads,
// mutations, and the per-resource domain actions.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

// List handles GET /api/resources/:resource.
func (h *ResourceHandler) List(c echo.Context) error {
	sess, res, err := h.target(c)
	if err != nil {
		return err
	}

	data, err := h.service.Read(c.Request().Context(), sess, res, filterFromQuery(c.QueryParams()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: data})
}

// Get handles GET /api/resources/:resource/:id.
func (h *ResourceHandler) Get(c echo.Context) error {
	sess, res, err := h.target(c)
	if err != nil {
		return err
	}

	data, err := h.service.Get(c.Request().Context(), sess, res, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: data})
}

// Create handles POST /api/resources/:resource.
func (h *ResourceHandler) Create(c echo.Context) error {
	sess, res, err := h.target(c)
	if err != nil {
		return err
	}

	var payload json.RawMessage
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	data, err := h.service.Create(c.Request().Context(), sess, res, payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: data})
}

// Update handles PATCH /api/resources/:resource/:id.
func (h *ResourceHandler) Update(c echo.Context) error {
	sess, res, err := h.target(c)
	if err != nil {
		return err
	}

	var payload json.RawMessage
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	data, err := h.service.Update(c.Request().Context(), sess, res, c.Param("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: data})
}

// Destroy handles DELETE /api/resources/:resource/:id.
func (h *ResourceHandler) Destroy(c echo.Context) error {
	sess, res, err := h.target(c)
	if err != nil {
		return err
	}

	if err := h.service.Destroy(c.Request().Context(), sess, res, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Action handles POST /api/resources/:resource/:id/actions/:action.
func (h *ResourceHandler) Action(c echo.Context) error {
	sess, res, err := h.target(c)
	if err != nil {
		return err
	}

	var input json.RawMessage
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	data, err := h.service.Action(c.Request().Context(), sess, res, c.Param("action"), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: data})
}

// target resolves the session and the resource named in the path. The
// resource set is closed; anything else never reaches the service layer.
func (h *ResourceHandler) target(c echo.Context) (*domain.Session, domain.Resource, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, "", err
	}
	res, err := domain.ParseResource(c.Param("resource"))
	if err != nil {
		return nil, "", err
	}
	return sess, res, nil
}
