package domain

// PageID is a logical dashboard page. The set is closed so page dispatch is
// a compile-checked switch, not a runtime string map.
type PageID string

const (
	PageOverview       PageID = "dashboard"
	PageProjects       PageID = "projects"
	PageTickets        PageID = "tickets"
	PageTimeEntries    PageID = "timeEntries"
	PageDocuments      PageID = "documents"
	PageTeam           PageID = "team"
	PageCompanies      PageID = "companies"
	PageAIChat         PageID = "aiChat"
	PageKnowledge      PageID = "knowledge"
	PageAIDocs         PageID = "aiDocs"
	PageProductPlans   PageID = "productPlans"
	PageFormResponses  PageID = "formResponses"
	PageFileBrowser    PageID = "fileBrowser"
	PageSEOAIAssistant PageID = "seoAIAssistant"
	PageBlogManager    PageID = "blogManager"
	PageAnalytics      PageID = "analytics"
	PageHeatmaps       PageID = "heatmaps"
	PageCaseStudies    PageID = "caseStudies"
	PageSettings       PageID = "settings"
)

// NavItem is one sidebar entry: stable id, translation key for the label,
// icon name, and the page it navigates to. Visibility is decided by the
// predicate table below, never per call site.
type NavItem struct {
	ID    PageID `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Page  PageID `json:"page"`
}

// navEntry binds a menu item to its visibility predicate.
type navEntry struct {
	item    NavItem
	visible func(Role) bool
}

func everyone(Role) bool { return true }

func seoTooling(r Role) bool { return r.IsSEOPartner() || r.CanManageCompanies() }

// navTable is the single source of truth for menu contents, declaration
// order and visibility. VisibleItems and IsAllowed both derive from it.
var navTable = []navEntry{
	{NavItem{PageOverview, "dashboard.nav.overview", "layout-dashboard", PageOverview}, everyone},
	{NavItem{PageProjects, "dashboard.nav.projects", "folder-kanban", PageProjects}, everyone},
	{NavItem{PageTickets, "dashboard.nav.tickets", "ticket", PageTickets}, everyone},
	{NavItem{PageTimeEntries, "dashboard.nav.timeEntries", "clock", PageTimeEntries}, Role.CanLogTime},
	{NavItem{PageDocuments, "dashboard.nav.documents", "file-text", PageDocuments}, everyone},
	{NavItem{PageTeam, "dashboard.nav.team", "users", PageTeam}, Role.IsStaff},
	{NavItem{PageCompanies, "dashboard.nav.companies", "building", PageCompanies}, Role.CanManageCompanies},
	{NavItem{PageAIChat, "dashboard.nav.aiChat", "message-square", PageAIChat}, everyone},
	{NavItem{PageKnowledge, "dashboard.nav.knowledge", "brain", PageKnowledge}, Role.IsStaff},
	{NavItem{PageAIDocs, "dashboard.nav.aiDocs", "sparkles", PageAIDocs}, Role.IsStaff},
	{NavItem{PageProductPlans, "dashboard.nav.productPlans", "file-check", PageProductPlans}, everyone},
	{NavItem{PageFormResponses, "dashboard.nav.formResponses", "clipboard-list", PageFormResponses}, Role.CanManageCompanies},
	{NavItem{PageFileBrowser, "dashboard.nav.fileBrowser", "folder-open", PageFileBrowser}, Role.CanManageCompanies},
	{NavItem{PageSEOAIAssistant, "seoPartner.nav.aiAssistant", "bot", PageSEOAIAssistant}, seoTooling},
	{NavItem{PageBlogManager, "seoPartner.nav.blogManager", "pen-square", PageBlogManager}, seoTooling},
	{NavItem{PageAnalytics, "seoPartner.nav.analytics", "bar-chart-3", PageAnalytics}, seoTooling},
	{NavItem{PageHeatmaps, "seoPartner.nav.heatmaps", "mouse-pointer-2", PageHeatmaps}, seoTooling},
	{NavItem{PageCaseStudies, "seoPartner.nav.caseStudies", "briefcase", PageCaseStudies}, seoTooling},
}

// VisibleItems filters the master menu for a role, preserving declaration
// order. The order is the menu's visual order and must stay stable.
func VisibleItems(role Role) []NavItem {
	items := make([]NavItem, 0, len(navTable))
	for _, e := range navTable {
		if e.visible(role) {
			items = append(items, e.item)
		}
	}
	return items
}

// IsAllowed reports whether a role may reach the given page. Pages absent
// from the menu table (settings, and any future baseline page) are allowed
// unconditionally: the gate restricts the enumerated optional items only.
func IsAllowed(role Role, page PageID) bool {
	for _, e := range navTable {
		if e.item.Page == page {
			return e.visible(role)
		}
	}
	return true
}
