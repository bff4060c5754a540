package domain

// Resource identifies a backend-owned entity family reachable through the
// RPC API. The set is closed; requests naming anything else are rejected
// with ErrUnknownResource before touching the network.
type Resource string

const (
	ResourceCompany      Resource = "company"
	ResourceProject      Resource = "project"
	ResourceTicket       Resource = "ticket"
	ResourceTimeEntry    Resource = "time_entry"
	ResourceInvitation   Resource = "invitation"
	ResourceDocument     Resource = "document"
	ResourceComment      Resource = "comment"
	ResourceFormResponse Resource = "form_response"
	ResourceInternalNote Resource = "internal_note"
	ResourceProductPlan  Resource = "product_plan"
	ResourceMilestone    Resource = "milestone"
	ResourceMeeting      Resource = "meeting"
)

// resourceActions is the closed table of named domain actions per resource.
// These are constrained mutations with no generic CRUD equivalent.
var resourceActions = map[Resource][]string{
	ResourceProject:      {"submit", "approve", "reject", "set_priority", "toggle_priority"},
	ResourceTicket:       {"assign", "start_work", "submit_for_review", "approve", "request_changes"},
	ResourceInvitation:   {"accept"},
	ResourceProductPlan:  {"send_to_customer", "mark_viewed", "approve", "request_changes", "revise", "archive"},
	ResourceMilestone:    {"mark_completed", "reopen"},
	ResourceMeeting:      {"start", "complete", "cancel"},
	ResourceCompany:      nil,
	ResourceTimeEntry:    nil,
	ResourceDocument:     nil,
	ResourceComment:      nil,
	ResourceFormResponse: nil,
	ResourceInternalNote: nil,
}

// ParseResource validates a wire-level resource name.
func ParseResource(s string) (Resource, error) {
	r := Resource(s)
	if _, ok := resourceActions[r]; !ok {
		return "", ErrUnknownResource
	}
	return r, nil
}

// SupportsAction reports whether the named domain action exists for the
// resource.
func (r Resource) SupportsAction(action string) bool {
	for _, a := range resourceActions[r] {
		if a == action {
			return true
		}
	}
	return false
}

// ScopeOf returns the parent resource that scopes reads of r, if any.
// Comments hang off tickets; plans, notes, form responses, milestones and
// meetings hang off projects.
func (r Resource) ScopeOf() (Resource, bool) {
	switch r {
	case ResourceComment:
		return ResourceTicket, true
	case ResourceFormResponse, ResourceInternalNote, ResourceProductPlan, ResourceMilestone, ResourceMeeting:
		return ResourceProject, true
	}
	return "", false
}
