package domain

// Role identifies an actor's position in the Siteflow organisation or
// towards it. The set is closed: values coming off the wire that match no
// constant are normalised to RoleCustomer (least privilege).
type Role string

const (
	RoleAdmin         Role = "siteflow_admin"
	RoleKAM           Role = "siteflow_kam"
	RoleProjectLeader Role = "siteflow_pl"
	RoleDevFrontend   Role = "siteflow_dev_frontend"
	RoleDevBackend    Role = "siteflow_dev_backend"
	RoleDevFullstack  Role = "siteflow_dev_fullstack"
	RoleCustomer      Role = "customer"
	RolePartner       Role = "partner"
	RoleSEOPartner    Role = "seo_partner"
)

// AllRoles lists every valid role. Order matches the backend's enum.
var AllRoles = []Role{
	RoleAdmin,
	RoleKAM,
	RoleProjectLeader,
	RoleDevFrontend,
	RoleDevBackend,
	RoleDevFullstack,
	RoleCustomer,
	RolePartner,
	RoleSEOPartner,
}

// ParseRole maps an arbitrary string to a Role, falling back to
// RoleCustomer for anything outside the closed set.
func ParseRole(s string) Role {
	for _, r := range AllRoles {
		if Role(s) == r {
			return r
		}
	}
	return RoleCustomer
}

// IsStaff reports whether the role belongs to the Siteflow organisation
// (admin, KAM, project leader or any developer).
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleKAM, RoleProjectLeader, RoleDevFrontend, RoleDevBackend, RoleDevFullstack:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool         { return r == RoleAdmin }
func (r Role) IsKAM() bool           { return r == RoleKAM }
func (r Role) IsProjectLeader() bool { return r == RoleProjectLeader }

// IsDeveloper is true for all three developer specialisations.
func (r Role) IsDeveloper() bool {
	return r == RoleDevFrontend || r == RoleDevBackend || r == RoleDevFullstack
}

func (r Role) IsCustomer() bool   { return r == RoleCustomer }
func (r Role) IsPartner() bool    { return r == RolePartner }
func (r Role) IsSEOPartner() bool { return r == RoleSEOPartner }

// CanInviteUsers: only admins and KAMs may invite new users.
func (r Role) CanInviteUsers() bool { return r == RoleAdmin || r == RoleKAM }

// CanManageProjects: admins, project leaders and KAMs.
func (r Role) CanManageProjects() bool {
	return r == RoleAdmin || r == RoleProjectLeader || r == RoleKAM
}

// CanViewAllCustomers: admins and KAMs see every customer account.
func (r Role) CanViewAllCustomers() bool { return r == RoleAdmin || r == RoleKAM }

// CanManageCompanies: admin only.
func (r Role) CanManageCompanies() bool { return r == RoleAdmin }

// CanLogTime: all Siteflow staff log time, nobody else.
func (r Role) CanLogTime() bool { return r.IsStaff() }

// DashboardType selects which dashboard variant a role lands on.
// Unmatched roles get the customer dashboard.
func (r Role) DashboardType() string {
	switch {
	case r.IsAdmin():
		return "admin"
	case r.IsKAM():
		return "kam"
	case r.IsProjectLeader():
		return "project-leader"
	case r.IsDeveloper():
		return "developer"
	case r.IsPartner():
		return "partner"
	case r.IsSEOPartner():
		return "seo-partner"
	default:
		return "customer"
	}
}

var roleDisplayNames = map[Role]string{
	RoleAdmin:         "Administrator",
	RoleKAM:           "Key Account Manager",
	RoleProjectLeader: "Project Leader",
	RoleDevFrontend:   "Frontend Developer",
	RoleDevBackend:    "Backend Developer",
	RoleDevFullstack:  "Fullstack Developer",
	RoleCustomer:      "Kund",
	RolePartner:       "Partner",
	RoleSEOPartner:    "SEO Partner",
}

// DisplayName returns the human-readable role name. Roles missing from the
// table echo their raw identifier rather than returning an empty string.
func (r Role) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}
