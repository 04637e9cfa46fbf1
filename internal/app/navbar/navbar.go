package navbar

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

const (
	SignInURL = "/auth/sign-in"
	SignUpURL = "/auth/sign-up"

	DrawerSignInID = "visiventur-drawer-signin"
	DrawerSignUpID = "visiventur-drawer-signup"
)

func PrimaryLinkID(v Variant, i int) string {
	return fmt.Sprintf("visiventur-%s-link-%d", v, i)
}

// Config wires a Navbar. Focus and Scroll are usually the same *Document.
type Config struct {
	Store      *Store
	Focus      Focuser
	Scroll     ScrollLocker
	Tracker    Tracker
	Logger     *zap.Logger
	Navigate   Navigator
	EndSession SessionEnder
	// Path is the current request path, used to mark the active primary link.
	Path string
}

// Navbar composes the overlays around one store and keeps them coordinated:
// opening help from the drawer closes the drawer, and drawer navigation dismisses it.
type Navbar struct {
	store    *Store
	focus    Focuser
	tracker  Tracker
	logger   *zap.Logger
	navigate Navigator
	path     string

	Currency       *CurrencySelector
	DrawerCurrency *CurrencySelector
	Profile        *ProfileMenu
	MobileProfile  *ProfileMenu
	Help           *Dialog
	Drawer         *Dialog
}

func New(cfg Config) *Navbar {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Focus == nil {
		doc := NewDocument()
		cfg.Focus = doc
		if cfg.Scroll == nil {
			cfg.Scroll = doc
		}
	}
	n := &Navbar{
		store:    cfg.Store,
		focus:    cfg.Focus,
		tracker:  cfg.Tracker,
		logger:   cfg.Logger,
		navigate: cfg.Navigate,
		path:     cfg.Path,
	}
	n.Currency = NewCurrencySelector(cfg.Store, cfg.Focus, VariantDesktop)
	n.DrawerCurrency = NewCurrencySelector(cfg.Store, cfg.Focus, VariantDrawer)

	profileCfg := ProfileMenuConfig{
		Store:      cfg.Store,
		Focus:      cfg.Focus,
		Tracker:    cfg.Tracker,
		Logger:     cfg.Logger,
		Navigate:   cfg.Navigate,
		EndSession: cfg.EndSession,
		Variant:    VariantDesktop,
	}
	n.Profile = NewProfileMenu(profileCfg)
	profileCfg.Variant = VariantDrawer
	profileCfg.Navigate = n.NavigateFromDrawer
	n.MobileProfile = NewProfileMenu(profileCfg)

	n.Help = NewHelpModal(cfg.Focus, cfg.Scroll, cfg.Tracker, cfg.Logger, n.Authenticated)
	n.Drawer = NewMobileDrawer(cfg.Focus, cfg.Scroll, cfg.Tracker, cfg.Logger, n.drawerFocusables)

	if d, ok := cfg.Focus.(disabler); ok {
		n.syncDisabled(d, cfg.Store.State())
		cfg.Store.Subscribe(func(_, next State, _ Action) {
			n.syncDisabled(d, next)
		})
	}
	return n
}

type disabler interface {
	SetDisabled(id string, disabled bool)
}

// syncDisabled keeps both currency triggers unfocusable until hydration.
func (n *Navbar) syncDisabled(d disabler, st State) {
	d.SetDisabled(n.Currency.TriggerID(), !st.HasHydrated)
	d.SetDisabled(n.DrawerCurrency.TriggerID(), !st.HasHydrated)
}

func (n *Navbar) Store() *Store { return n.store }

func (n *Navbar) Authenticated() bool {
	return n.store.State().Authenticated()
}

// ClickLogo records the click and dismisses the drawer.
func (n *Navbar) ClickLogo() {
	n.track(EventLogoClick, nil)
	n.Drawer.Close()
}

func (n *Navbar) OpenHelp() {
	n.Help.Open()
}

// OpenHelpFromDrawer closes the drawer before opening help, so help restores
// focus to the drawer toggle.
func (n *Navbar) OpenHelpFromDrawer() {
	n.Drawer.Close()
	n.Help.Open()
}

// ToggleDrawer handles the hamburger button.
func (n *Navbar) ToggleDrawer() {
	n.track(EventMobileMenuToggle, Payload{"open": fmt.Sprint(!n.Drawer.IsOpen())})
	n.Drawer.SetOpen(!n.Drawer.IsOpen())
}

func (n *Navbar) SetDrawerOpen(open bool) {
	n.Drawer.SetOpen(open)
}

// NavigateFromDrawer follows a link inside the drawer and dismisses it.
func (n *Navbar) NavigateFromDrawer(href string) {
	n.Drawer.Close()
	if n.navigate != nil {
		n.navigate(href)
	}
}

func (n *Navbar) ClickSignIn() {
	n.track(EventSignInClick, nil)
	n.NavigateFromDrawer(SignInURL)
}

func (n *Navbar) ClickSignUp() {
	n.track(EventSignUpClick, nil)
	n.NavigateFromDrawer(SignUpURL)
}

// KeyDown routes a document-level key to the topmost open dialog.
func (n *Navbar) KeyDown(ev KeyEvent) bool {
	if n.Help.IsOpen() {
		return n.Help.KeyDown(ev)
	}
	if n.Drawer.IsOpen() {
		return n.Drawer.KeyDown(ev)
	}
	return false
}

// PointerDown dispatches a pointer press on target to every overlay's outside-click handling.
func (n *Navbar) PointerDown(target string) {
	n.Currency.PointerDown(target)
	n.DrawerCurrency.PointerDown(target)
	n.Profile.PointerDown(target)
	if n.Help.IsOpen() {
		n.Help.Click(target)
		return
	}
	n.Drawer.Click(target)
}

type LinkView struct {
	ID          string
	Name        string
	URL         string
	Active      bool
	Placeholder bool
}

// PrimaryLinks returns the primary navigation for variant with the current path marked.
func (n *Navbar) PrimaryLinks(v Variant) []LinkView {
	return PrimaryLinks(v, n.path)
}

func PrimaryLinks(v Variant, path string) []LinkView {
	links := make([]LinkView, 0, len(models.PrimaryNav.Items))
	for i, item := range models.PrimaryNav.Items {
		links = append(links, LinkView{
			ID:          PrimaryLinkID(v, i),
			Name:        item.Name,
			URL:         item.URL,
			Active:      item.IsActive(path),
			Placeholder: item.Placeholder,
		})
	}
	return links
}

// Snapshot is everything the templates need to render the navbar.
type Snapshot struct {
	State            State
	Path             string
	Links            []LinkView
	CurrencyLabel    string
	CurrencyDisabled bool
	CurrencyOpen     bool
	ActiveCurrency   int
	Initials         string
	Badge            int
	ShowBadge        bool
	ProfileOpen      bool
	HelpOpen         bool
	DrawerOpen       bool
}

func (n *Navbar) Snapshot() Snapshot {
	st := n.store.State()
	badge, show := BadgeCount(st.User)
	return Snapshot{
		State:            st,
		Path:             n.path,
		Links:            n.PrimaryLinks(VariantDesktop),
		CurrencyLabel:    st.Currency.Label(),
		CurrencyDisabled: !st.HasHydrated,
		CurrencyOpen:     n.Currency.IsOpen(),
		ActiveCurrency:   n.Currency.ActiveIndex(),
		Initials:         Initials(st.User),
		Badge:            badge,
		ShowBadge:        show,
		ProfileOpen:      n.Profile.IsOpen(),
		HelpOpen:         n.Help.IsOpen(),
		DrawerOpen:       n.Drawer.IsOpen(),
	}
}

func (n *Navbar) drawerFocusables() []string {
	ids := []string{DrawerCloseID}
	for _, l := range n.PrimaryLinks(VariantDrawer) {
		if !l.Placeholder {
			ids = append(ids, l.ID)
		}
	}
	ids = append(ids, n.DrawerCurrency.TriggerID(), DrawerHelpButtonID)
	if n.Authenticated() {
		ids = append(ids, n.MobileProfile.TriggerID())
		for i := 0; i < n.MobileProfile.ItemCount(); i++ {
			ids = append(ids, n.MobileProfile.ItemID(i))
		}
		return ids
	}
	return append(ids, DrawerSignInID, DrawerSignUpID)
}

func (n *Navbar) track(e Event, p Payload) {
	track(context.Background(), n.tracker, n.logger, e, p)
}
