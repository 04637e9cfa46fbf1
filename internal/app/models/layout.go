package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
	// Placeholder links render disabled and are skipped by keyboard traversal.
	Placeholder bool
}

type Navigation struct {
	Items []NavItem
}

// LayoutTempl carries what the page shell needs to render around Content.
type LayoutTempl struct {
	Title     string
	User      *SessionUser
	Nav       Navigation
	ActiveNav string
	Currency  Currency
	ThemeMode ThemeMode
	Content   templ.Component
}

var PrimaryNav = Navigation{
	Items: []NavItem{
		{Name: "Pricing", URL: "/pricing"},
		{Name: "Destinations", URL: "/destinations", Placeholder: true},
		{Name: "Explore", URL: "/explore"},
	},
}

// ProfileNav lists the profile menu links. Log out is appended by the menu itself.
var ProfileNav = Navigation{
	Items: []NavItem{
		{Name: "Profile", URL: "/profile"},
		{Name: "Dashboard", URL: "/dashboard"},
		{Name: "Manage Subscription", URL: "/account/subscription"},
	},
}

// IsActive reports whether path selects item for aria-current.
func (n NavItem) IsActive(path string) bool {
	return !n.Placeholder && n.URL == path
}
