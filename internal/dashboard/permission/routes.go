package permission

import (
	"strings"
)

// Route describes a dashboard page.
type Route struct {
	Path    string
	Section Section
	Public  bool
}

// Routes is the dashboard page table.
var Routes = []Route{
	{Path: "/", Public: true},
	{Path: "/login", Public: true},
	{Path: "/register", Public: true},
	{Path: "/set-password", Public: true},
	{Path: "/dashboard", Section: SectionDashboard},
	{Path: "/admins", Section: SectionAdmins},
	{Path: "/communities", Section: SectionCommunities},
	{Path: "/residents", Section: SectionUsers},
	{Path: "/users", Section: SectionUsers},
	{Path: "/utilities", Section: SectionUtilities},
	{Path: "/services", Section: SectionUtilities},
	{Path: "/wallet", Section: SectionWallet},
	{Path: "/dues", Section: SectionWallet},
	{Path: "/access-codes", Section: SectionAccessCodes},
	{Path: "/partners", Section: SectionPartners},
	{Path: "/integrations", Section: SectionIntegrations},
	{Path: "/settings", Section: SectionSettings},
}

// RouteFor finds the page route for path. A route matches its own path and
// everything below it ("/communities/new" belongs to "/communities").
// Unknown paths are reported as not found.
func RouteFor(path string) (Route, bool) {
	path = "/" + strings.Trim(path, "/")

	var best Route
	found := false
	for _, r := range Routes {
		if r.Path == "/" {
			if path == "/" {
				return r, true
			}
			continue
		}
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			if !found || len(r.Path) > len(best.Path) {
				best, found = r, true
			}
		}
	}
	return best, found
}

// CanView reports whether profileType may open the page at path. Public pages
// are open to everyone; unknown paths are denied.
func CanView(profileType, path string) bool {
	r, ok := RouteFor(path)
	if !ok {
		return false
	}
	if r.Public {
		return true
	}
	return HasPermission(profileType, string(r.Section))
}
