// Package access holds the role-based route table shared by the navigation
// menu and the API guards.
package access

import (
	"path"
	"strings"

	"equipecho/internal/domain"
)

const (
	RouteDashboard  = "/"
	RouteEquipments = "/equipments"
	RouteInventory  = "/inventory"
	RouteUsers      = "/users"
	RouteSettings   = "/settings"
)

var everyone = []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleUser}

var routeRoles = map[string][]domain.Role{
	RouteDashboard:  everyone,
	RouteEquipments: everyone,
	RouteInventory:  {domain.RoleAdmin, domain.RoleManager},
	RouteUsers:      {domain.RoleAdmin},
	RouteSettings:   everyone,
}

// MenuItem is one entry of the navigation menu.
type MenuItem struct {
	Title string `json:"title"`
	Route string `json:"route"`
}

var menu = []MenuItem{
	{Title: "Dashboard", Route: RouteDashboard},
	{Title: "Equipment", Route: RouteEquipments},
	{Title: "Inventory", Route: RouteInventory},
	{Title: "Users", Route: RouteUsers},
	{Title: "Settings", Route: RouteSettings},
}

// Section maps a path to the top-level section that governs it.
// "/users/12/edit" belongs to "/users". Unknown paths, and paths such as
// "//" or "/.." that only collapse to the root, return "".
func Section(route string) string {
	route = strings.TrimSpace(route)
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" || route == "/" {
		return RouteDashboard
	}

	// "//users" and "/users//" govern the same page as "/users".
	cleaned := path.Clean("/" + route)
	if cleaned == "/" {
		return ""
	}

	first := strings.SplitN(cleaned[1:], "/", 2)[0]
	section := "/" + first
	if _, ok := routeRoles[section]; !ok {
		return ""
	}
	return section
}

// CanAccess reports whether role may open route. Unknown routes and roles are denied.
func CanAccess(route string, role domain.Role) bool {
	section := Section(route)
	if section == "" {
		return false
	}
	for _, allowed := range routeRoles[section] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Menu lists the navigation entries visible to role, in display order.
func Menu(role domain.Role) []MenuItem {
	items := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if CanAccess(item.Route, role) {
			items = append(items, item)
		}
	}
	return items
}

type Decision string

const (
	DecisionPending Decision = "pending"
	DecisionLogin   Decision = "login"
	DecisionDeny    Decision = "deny"
	DecisionAllow   Decision = "allow"
)

// Session is what the caller knows about the current visitor.
// Resolved is false while the profile is still loading.
type Session struct {
	Authenticated bool
	Resolved      bool
	Role          domain.Role
}

// Gate decides what a protected view should render.
func Gate(route string, s Session) Decision {
	switch {
	case !s.Resolved:
		return DecisionPending
	case !s.Authenticated:
		return DecisionLogin
	case !CanAccess(route, s.Role):
		return DecisionDeny
	default:
		return DecisionAllow
	}
}
