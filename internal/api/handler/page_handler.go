package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

// PageHandler resolves a dashboard page to its data payload. Unknown or
// disallowed pages fall back to the overview payload, never an error page.
type PageHandler struct {
	resources ports.ResourceService
	activity  ports.ActivityFeed
	log       zerolog.Logger
}

func NewPageHandler(resources ports.ResourceService, activity ports.ActivityFeed, log zerolog.Logger) *PageHandler {
	return &PageHandler{resources: resources, activity: activity, log: log}
}

type pageResponse struct {
	Page     domain.PageID          `json:"page"`
	Data     json.RawMessage        `json:"data,omitempty"`
	Activity []domain.ActivityEvent `json:"activity,omitempty"`
}

// Page handles GET /api/pages/:page.
func (h *PageHandler) Page(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	page := h.resolve(domain.PageID(c.Param("page")), sess.User.Role)
	resp, err := h.build(c, sess, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// resolve maps the requested id to the page that will actually render:
// itself when known and allowed, the overview otherwise.
func (h *PageHandler) resolve(page domain.PageID, role domain.Role) domain.PageID {
	if !knownPage(page) {
		h.log.Warn().Str("page", string(page)).Msg("unknown page requested, serving overview")
		return domain.PageOverview
	}
	if !domain.IsAllowed(role, page) {
		h.log.Warn().
			Str("page", string(page)).
			Str("role", string(role)).
			Msg("page not allowed for role, serving overview")
		return domain.PageOverview
	}
	return page
}

// build dispatches through a closed switch; every PageID constant has an
// arm, so a new page cannot be added without deciding its payload here.
func (h *PageHandler) build(c echo.Context, sess *domain.Session, page domain.PageID) (*pageResponse, error) {
	ctx := c.Request().Context()

	switch page {
	case domain.PageOverview:
		feed, err := h.activity.Feed(ctx, sess.User, 0)
		if err != nil {
			// The overview survives a broken feed; the block renders empty.
			h.log.Error().Err(err).Msg("activity feed unavailable")
			feed = nil
		}
		data, err := h.resources.Read(ctx, sess, domain.ResourceProject, nil)
		if err != nil {
			return nil, err
		}
		return &pageResponse{Page: page, Data: data, Activity: feed}, nil

	case domain.PageProjects:
		return h.collectionPage(ctx, sess, page, domain.ResourceProject, c.QueryParams())
	case domain.PageTickets:
		return h.collectionPage(ctx, sess, page, domain.ResourceTicket, c.QueryParams())
	case domain.PageTimeEntries:
		return h.collectionPage(ctx, sess, page, domain.ResourceTimeEntry, c.QueryParams())
	case domain.PageDocuments:
		return h.collectionPage(ctx, sess, page, domain.ResourceDocument, c.QueryParams())
	case domain.PageTeam:
		return h.collectionPage(ctx, sess, page, domain.ResourceInvitation, c.QueryParams())
	case domain.PageCompanies:
		return h.collectionPage(ctx, sess, page, domain.ResourceCompany, c.QueryParams())
	case domain.PageProductPlans:
		return h.collectionPage(ctx, sess, page, domain.ResourceProductPlan, c.QueryParams())
	case domain.PageFormResponses:
		return h.collectionPage(ctx, sess, page, domain.ResourceFormResponse, c.QueryParams())

	case domain.PageAIChat, domain.PageKnowledge, domain.PageAIDocs,
		domain.PageFileBrowser, domain.PageSEOAIAssistant, domain.PageBlogManager,
		domain.PageAnalytics, domain.PageHeatmaps, domain.PageCaseStudies,
		domain.PageSettings:
		// Tool pages load their content through dedicated resource calls
		// made by the client; the page payload is the descriptor alone.
		return &pageResponse{Page: page}, nil
	}

	return &pageResponse{Page: domain.PageOverview}, nil
}

func (h *PageHandler) collectionPage(ctx context.Context, sess *domain.Session, page domain.PageID, res domain.Resource, query url.Values) (*pageResponse, error) {
	data, err := h.resources.Read(ctx, sess, res, filterFromQuery(query))
	if err != nil {
		return nil, err
	}
	return &pageResponse{Page: page, Data: data}, nil
}

// filterFromQuery flattens query parameters into the upstream filter shape,
// first value wins.
func filterFromQuery(query url.Values) map[string]string {
	if len(query) == 0 {
		return nil
	}
	filter := make(map[string]string, len(query))
	for k, vs := range query {
		if len(vs) > 0 {
			filter[k] = vs[0]
		}
	}
	return filter
}

func knownPage(page domain.PageID) bool {
	switch page {
	case domain.PageOverview, domain.PageProjects, domain.PageTickets,
		domain.PageTimeEntries, domain.PageDocuments, domain.PageTeam,
		domain.PageCompanies, domain.PageAIChat, domain.PageKnowledge,
		domain.PageAIDocs, domain.PageProductPlans, domain.PageFormResponses,
		domain.PageFileBrowser, domain.PageSEOAIAssistant, domain.PageBlogManager,
		domain.PageAnalytics, domain.PageHeatmaps, domain.PageCaseStudies,
		domain.PageSettings:
		return true
	}
	return false
}
