package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

type navbarFixture struct {
	nav       *Navbar
	store     *Store
	doc       *Document
	recorder  *Recorder
	storage   *MemoryStorage
	navigated []string
}

func newNavbarFixture(t *testing.T, opts Options, path string) *navbarFixture {
	t.Helper()
	f := &navbarFixture{
		store:    NewStore(opts),
		doc:      NewDocument(),
		recorder: &Recorder{},
		storage:  NewMemoryStorage(),
	}
	NewEffects(EffectsConfig{Storage: f.storage, Tracker: f.recorder, Theme: f.doc}).Attach(f.store)
	f.nav = New(Config{
		Store:    f.store,
		Focus:    f.doc,
		Scroll:   f.doc,
		Tracker:  f.recorder,
		Navigate: func(href string) { f.navigated = append(f.navigated, href) },
		Path:     path,
	})
	return f
}

func TestVisitorSelectsEuro(t *testing.T) {
	f := newNavbarFixture(t, Options{}, "/")
	assert.Equal(t, "$ USD", f.nav.Snapshot().CurrencyLabel)

	f.store.Hydrate(f.storage)
	f.nav.Currency.Toggle()
	f.nav.Currency.ClickOption(models.CurrencyIndex(models.CurrencyEUR))

	snap := f.nav.Snapshot()
	assert.Equal(t, "€ EUR", snap.CurrencyLabel)
	assert.False(t, snap.CurrencyOpen)

	v, ok := f.storage.GetItem(CurrencyStorageKey)
	require.True(t, ok)
	assert.Equal(t, "EUR", v)

	events := f.recorder.Named(EventCurrencyChange)
	require.Len(t, events, 1)
	assert.Equal(t, Payload{"currency": "EUR", "gateway": "Stripe"}, events[0].Payload)
}

func TestCurrencyTriggersDisabledUntilHydrated(t *testing.T) {
	f := newNavbarFixture(t, Options{}, "/")
	assert.True(t, f.doc.IsDisabled(f.nav.Currency.TriggerID()))
	assert.True(t, f.doc.IsDisabled(f.nav.DrawerCurrency.TriggerID()))
	assert.True(t, f.nav.Snapshot().CurrencyDisabled)

	f.store.Hydrate(nil)
	assert.False(t, f.doc.IsDisabled(f.nav.Currency.TriggerID()))
	assert.False(t, f.nav.Snapshot().CurrencyDisabled)
}

func TestHelpFromDrawer(t *testing.T) {
	f := newNavbarFixture(t, Options{}, "/")
	f.doc.Focus(DrawerToggleID)

	f.nav.ToggleDrawer()
	require.True(t, f.nav.Drawer.IsOpen())
	assert.Equal(t, DrawerCloseID, f.doc.ActiveElement())

	f.nav.OpenHelpFromDrawer()
	assert.False(t, f.nav.Drawer.IsOpen())
	require.True(t, f.nav.Help.IsOpen())
	assert.Equal(t, HelpCloseID, f.doc.ActiveElement())
	assert.True(t, f.doc.ScrollLocked())

	assert.True(t, f.nav.KeyDown(KeyEvent{Key: KeyEscape}))
	assert.False(t, f.nav.Help.IsOpen())
	assert.Equal(t, DrawerToggleID, f.doc.ActiveElement())
	assert.False(t, f.doc.ScrollLocked())

	names := make([]Event, 0)
	for _, e := range f.recorder.Events() {
		names = append(names, e.Event)
	}
	assert.Equal(t, []Event{EventMobileMenuToggle, EventDrawerOpen, EventMobileMenuClose, EventHelpOpen}, names)
}

func TestClickLogoClosesDrawer(t *testing.T) {
	f := newNavbarFixture(t, Options{}, "/")
	f.nav.SetDrawerOpen(true)
	f.nav.ClickLogo()
	assert.False(t, f.nav.Drawer.IsOpen())
	assert.Len(t, f.recorder.Named(EventLogoClick), 1)
}

func TestDrawerNavigation(t *testing.T) {
	f := newNavbarFixture(t, Options{}, "/")
	f.nav.SetDrawerOpen(true)
	f.nav.ClickSignUp()
	assert.False(t, f.nav.Drawer.IsOpen())
	assert.Equal(t, []string{SignUpURL}, f.navigated)
	assert.Len(t, f.recorder.Named(EventSignUpClick), 1)

	f.nav.ClickSignIn()
	assert.Equal(t, []string{SignUpURL, SignInURL}, f.navigated)
}

func TestDrawerFocusables(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		f := newNavbarFixture(t, Options{}, "/")
		ids := f.nav.drawerFocusables()
		assert.Equal(t, DrawerCloseID, ids[0])
		assert.Contains(t, ids, DrawerSignInID)
		assert.NotContains(t, ids, PrimaryLinkID(VariantDrawer, 1), "placeholder links are not focusable")

		f.nav.SetDrawerOpen(true)
		f.doc.Focus(DrawerSignUpID)
		f.nav.KeyDown(KeyEvent{Key: KeyTab})
		assert.Equal(t, DrawerCloseID, f.doc.ActiveElement())
	})

	t.Run("signed in", func(t *testing.T) {
		f := newNavbarFixture(t, Options{User: premiumUser()}, "/")
		ids := f.nav.drawerFocusables()
		assert.NotContains(t, ids, DrawerSignInID)
		assert.Contains(t, ids, f.nav.MobileProfile.ItemID(f.nav.MobileProfile.LogoutIndex()))
	})

	t.Run("disabled currency trigger is skipped", func(t *testing.T) {
		f := newNavbarFixture(t, Options{}, "/")
		f.nav.SetDrawerOpen(true)
		f.doc.Focus(PrimaryLinkID(VariantDrawer, 2))
		f.nav.KeyDown(KeyEvent{Key: KeyTab})
		assert.Equal(t, DrawerHelpButtonID, f.doc.ActiveElement())
	})
}

func TestPrimaryLinks(t *testing.T) {
	links := PrimaryLinks(VariantDesktop, "/pricing")
	require.Len(t, links, 3)
	assert.True(t, links[0].Active)
	assert.True(t, links[1].Placeholder)
	assert.False(t, links[2].Active)

	links = PrimaryLinks(VariantDesktop, "/destinations")
	assert.False(t, links[1].Active, "placeholders are never current")
}

func TestSnapshotProfile(t *testing.T) {
	user := premiumUser()
	user.UnreadNotifications = 12
	f := newNavbarFixture(t, Options{User: user}, "/explore")

	snap := f.nav.Snapshot()
	assert.True(t, snap.State.Authenticated())
	assert.Equal(t, "AL", snap.Initials)
	assert.Equal(t, 9, snap.Badge)
	assert.True(t, snap.ShowBadge)
	assert.Equal(t, models.ThemePremium, f.doc.Theme())
	assert.True(t, snap.Links[2].Active)
}

func TestMobileProfileLinkClosesDrawer(t *testing.T) {
	f := newNavbarFixture(t, Options{User: premiumUser()}, "/")
	f.nav.SetDrawerOpen(true)
	f.nav.MobileProfile.Select(0)
	assert.False(t, f.nav.Drawer.IsOpen())
	assert.Equal(t, []string{"/profile"}, f.navigated)
}

func TestPointerDownRouting(t *testing.T) {
	f := newNavbarFixture(t, Options{User: premiumUser()}, "/")
	f.store.Hydrate(nil)
	f.nav.Currency.Open()
	f.nav.Profile.Toggle()
	f.nav.SetDrawerOpen(true)

	f.nav.PointerDown(f.nav.Drawer.BackdropID())
	assert.False(t, f.nav.Currency.IsOpen())
	assert.False(t, f.nav.Profile.IsOpen())
	assert.False(t, f.nav.Drawer.IsOpen())
}
