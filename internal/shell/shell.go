// Package shell models the dashboard chrome that wraps every page: the
// collapsible sidebar, the mobile drawer, the active navigation route, and
// the light/dark theme. The web client renders whatever this state says;
// keeping the policy here means the responsive rules are written down once
// and are testable without a browser.
//
// The layout state machine has four states — desktop-expanded,
// desktop-collapsed, mobile-closed, mobile-open. Crossing the 768px viewport
// threshold moves between the desktop and mobile families (collapsing the
// sidebar on the way down); ToggleSidebar only moves within the desktop
// family and the mobile-menu operations only within the mobile family.
package shell

// MobileBreakpoint is the viewport width, in logical pixels, below which the
// layout switches to the mobile presentation.
const MobileBreakpoint = 768

// Content offsets in layout units: how far the page content is inset from
// the leading edge to make room for the sidebar.
const (
	OffsetMobile    = 0
	OffsetCollapsed = 80
	OffsetExpanded  = 280
)

// Theme selects the dashboard color tokens.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NavItem is one entry in the fixed sidebar navigation registry.
type NavItem struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Route string `json:"route"`
}

// NavItems is the static navigation menu, in display order.
var NavItems = []NavItem{
	{Icon: "layout-dashboard", Label: "Dashboard", Route: "/dashboard"},
	{Icon: "database", Label: "Databases", Route: "/databases"},
	{Icon: "zap", Label: "Query Optimizer", Route: "/optimizer"},
	{Icon: "bar-chart-3", Label: "Index Advisor", Route: "/indexes"},
	{Icon: "bell", Label: "Alerts", Route: "/alerts"},
	{Icon: "file-text", Label: "Reports", Route: "/reports"},
	{Icon: "users", Label: "Team", Route: "/team"},
}

// State is the chrome state for one session. It is created explicitly with
// New at application start and mutated only through its methods — there is
// no package-level shared instance.
type State struct {
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
	MobileMenuOpen   bool   `json:"mobileMenuOpen"`
	IsMobileViewport bool   `json:"isMobileViewport"`
	ActiveRoute      string `json:"activeRoute"`
	Theme            Theme  `json:"theme"`
}

// New returns the initial chrome state for the given viewport width: theme
// defaults to light, the dashboard route is active, and narrow viewports
// start collapsed.
func New(viewportWidth int) *State {
	s := &State{
		ActiveRoute: "/dashboard",
		Theme:       ThemeLight,
	}
	s.OnViewportChange(viewportWidth)
	return s
}

// OnViewportChange recomputes the mobile flag from the viewport width. When
// the viewport becomes narrow the sidebar is forced collapsed; growing wide
// again does not auto-expand it. The transition is one-directional and the
// operation is idempotent for a fixed width.
func (s *State) OnViewportChange(width int) {
	mobile := width < MobileBreakpoint
	if mobile {
		s.SidebarCollapsed = true
	} else {
		// The drawer only exists in the mobile presentation.
		s.MobileMenuOpen = false
	}
	s.IsMobileViewport = mobile
}

// SetSidebarCollapsed sets the desktop sidebar state directly. It has no
// effect on the viewport flag.
func (s *State) SetSidebarCollapsed(collapsed bool) {
	if s.IsMobileViewport {
		return
	}
	s.SidebarCollapsed = collapsed
}

// ToggleSidebar flips the desktop sidebar between expanded and collapsed.
// It is a no-op in the mobile presentation, where the drawer takes over.
func (s *State) ToggleSidebar() {
	if s.IsMobileViewport {
		return
	}
	s.SidebarCollapsed = !s.SidebarCollapsed
}

// OpenMobileMenu opens the mobile drawer; a no-op on desktop viewports.
func (s *State) OpenMobileMenu() {
	if !s.IsMobileViewport {
		return
	}
	s.MobileMenuOpen = true
}

// CloseMobileMenu closes the mobile drawer.
func (s *State) CloseMobileMenu() { s.MobileMenuOpen = false }

// ToggleMobileMenu flips the mobile drawer; a no-op on desktop viewports.
func (s *State) ToggleMobileMenu() {
	if !s.IsMobileViewport {
		return
	}
	s.MobileMenuOpen = !s.MobileMenuOpen
}

// NavigateTo records the new active route and unconditionally closes the
// mobile drawer, matching the "drawer closes on navigation" rule.
func (s *State) NavigateTo(route string) {
	s.ActiveRoute = route
	s.MobileMenuOpen = false
}

// ToggleTheme flips between light and dark. The choice lives only for the
// session; a reload returns to the default.
func (s *State) ToggleTheme() {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
		return
	}
	s.Theme = ThemeDark
}

// ContentOffset returns the leading inset of the content region: 0 in the
// mobile presentation, 80 with a collapsed sidebar, 280 expanded.
func (s *State) ContentOffset() int {
	switch {
	case s.IsMobileViewport:
		return OffsetMobile
	case s.SidebarCollapsed:
		return OffsetCollapsed
	default:
		return OffsetExpanded
	}
}

// ActiveNavIndex returns the index into NavItems whose route equals the
// active route, or -1 when no entry matches.
func (s *State) ActiveNavIndex() int {
	for i, item := range NavItems {
		if item.Route == s.ActiveRoute {
			return i
		}
	}
	return -1
}
