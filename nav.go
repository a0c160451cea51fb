package auth

// NavItem is one entry of the navigation sidebar.
type NavItem struct {
	Title  string
	URL    string
	Icon   string
	Active bool
}

const (
	NavGroupLabel = "Navigation"
	LogoText      = "Evernight"
)

var navItems = []NavItem{
	{Title: "Dashboard", URL: "/dashboard", Icon: "gauge"},
	{Title: "Applications", URL: "/applications", Icon: "briefcase"},
	{Title: "Status", URL: "/status", Icon: "chart-line"},
	{Title: "Tags", URL: "/tags", Icon: "tags"},
	{Title: "Settings", URL: "/settings", Icon: "settings"},
}

// Nav returns the sidebar items with the one matching path marked active.
func Nav(path string) []NavItem {
	out := make([]NavItem, len(navItems))
	copy(out, navItems)
	for i := range out {
		out[i].Active = out[i].URL == path
	}
	return out
}

// NavRoute reports whether path is one of the sidebar destinations.
func NavRoute(path string) (NavItem, bool) {
	for _, it := range navItems {
		if it.URL == path {
			return it, true
		}
	}
	return NavItem{}, false
}
