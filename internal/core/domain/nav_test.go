package domain

import "testing"

func itemIDs(items []NavItem) []PageID {
	ids := make([]PageID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func contains(ids []PageID, want PageID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestVisibleItems_Customer(t *testing.T) {
	ids := itemIDs(VisibleItems(RoleCustomer))

	for _, want := range []PageID{PageOverview, PageProjects, PageTickets, PageDocuments, PageAIChat, PageProductPlans} {
		if !contains(ids, want) {
			t.Fatalf("customer menu missing %s: %v", want, ids)
		}
	}
	for _, banned := range []PageID{PageCompanies, PageTeam, PageFileBrowser, PageTimeEntries, PageKnowledge, PageFormResponses, PageBlogManager} {
		if contains(ids, banned) {
			t.Fatalf("customer menu must not contain %s: %v", banned, ids)
		}
	}
}

func TestVisibleItems_Admin_SeesEverything(t *testing.T) {
	items := VisibleItems(RoleAdmin)
	if len(items) != len(navTable) {
		t.Fatalf("admin sees %d of %d items", len(items), len(navTable))
	}
}

func TestVisibleItems_SEOPartner(t *testing.T) {
	ids := itemIDs(VisibleItems(RoleSEOPartner))
	for _, want := range []PageID{PageSEOAIAssistant, PageBlogManager, PageAnalytics, PageHeatmaps, PageCaseStudies} {
		if !contains(ids, want) {
			t.Fatalf("seo partner menu missing %s", want)
		}
	}
	if contains(ids, PageTimeEntries) || contains(ids, PageTeam) {
		t.Fatalf("seo partner must not see staff items: %v", ids)
	}
}

func TestVisibleItems_OrderStable(t *testing.T) {
	// Visible items must appear in declaration order for every role.
	for _, r := range AllRoles {
		items := VisibleItems(r)
		pos := -1
		for _, it := range items {
			found := -1
			for i, e := range navTable {
				if e.item.ID == it.ID {
					found = i
					break
				}
			}
			if found <= pos {
				t.Fatalf("role %s: menu order diverges from declaration order", r)
			}
			pos = found
		}
	}
}

func TestIsAllowed_MatchesMenu(t *testing.T) {
	for _, r := range AllRoles {
		visible := map[PageID]bool{}
		for _, it := range VisibleItems(r) {
			visible[it.Page] = true
		}
		for _, e := range navTable {
			if IsAllowed(r, e.item.Page) != visible[e.item.Page] {
				t.Fatalf("role %s page %s: IsAllowed drifts from VisibleItems", r, e.item.Page)
			}
		}
	}
}

func TestIsAllowed_BaselinePages(t *testing.T) {
	// Pages outside the menu table are always reachable.
	if !IsAllowed(RoleCustomer, PageSettings) {
		t.Fatalf("settings must be allowed for every role")
	}
	if !IsAllowed(RolePartner, PageID("somethingElse")) {
		t.Fatalf("non-menu pages are unconditionally allowed")
	}
}
