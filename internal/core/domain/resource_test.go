package domain

import (
	"errors"
	"testing"
)

func TestParseResource(t *testing.T) {
	if _, err := ParseResource("project"); err != nil {
		t.Fatalf("project should parse: %v", err)
	}
	if _, err := ParseResource("shipment"); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestSupportsAction(t *testing.T) {
	cases := []struct {
		res    Resource
		action string
		want   bool
	}{
		{ResourceProject, "submit", true},
		{ResourceProject, "toggle_priority", true},
		{ResourceProject, "assign", false},
		{ResourceTicket, "start_work", true},
		{ResourceTicket, "submit", false},
		{ResourceInvitation, "accept", true},
		{ResourceProductPlan, "send_to_customer", true},
		{ResourceMilestone, "mark_completed", true},
		{ResourceMeeting, "cancel", true},
		{ResourceCompany, "approve", false},
	}
	for _, tc := range cases {
		if got := tc.res.SupportsAction(tc.action); got != tc.want {
			t.Errorf("%s.%s = %v, want %v", tc.res, tc.action, got, tc.want)
		}
	}
}

func TestScopeOf(t *testing.T) {
	if scope, ok := ResourceComment.ScopeOf(); !ok || scope != ResourceTicket {
		t.Fatalf("comments scope to tickets, got %s ok=%v", scope, ok)
	}
	for _, r := range []Resource{ResourceFormResponse, ResourceInternalNote, ResourceProductPlan, ResourceMilestone, ResourceMeeting} {
		if scope, ok := r.ScopeOf(); !ok || scope != ResourceProject {
			t.Fatalf("%s scopes to project, got %s ok=%v", r, scope, ok)
		}
	}
	if _, ok := ResourceCompany.ScopeOf(); ok {
		t.Fatalf("companies are unscoped")
	}
}
