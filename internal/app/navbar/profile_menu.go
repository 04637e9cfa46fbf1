package navbar

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

const (
	ProfileMenuID       = "visiventur-profile-menu"
	fallbackInitials    = "VV"
	maxBadgeCount       = 9
	signedOutLandingURL = "/"
)

// Navigator moves the page to href.
type Navigator func(href string)

// SessionEnder terminates the authenticated session, e.g. by clearing the auth cookie.
type SessionEnder func(ctx context.Context) error

func ProfileTriggerID(v Variant) string {
	return ProfileMenuID + "-" + string(v) + "-trigger"
}

// ProfileItemID is the id of menu item i; the last item is "Log out".
func ProfileItemID(v Variant, i int) string {
	return fmt.Sprintf("%s-%s-item-%d", ProfileMenuID, v, i)
}

// Initials derives avatar initials: the first letters of up to two name words,
// else the first two characters of the email, else "VV".
func Initials(u *models.SessionUser) string {
	if u == nil {
		return fallbackInitials
	}
	if words := strings.Fields(u.Name); len(words) > 0 {
		var b strings.Builder
		for _, w := range words {
			r, _ := utf8.DecodeRuneInString(w)
			b.WriteRune(r)
			if utf8.RuneCountInString(b.String()) == 2 {
				break
			}
		}
		return strings.ToUpper(b.String())
	}
	if u.Email != "" {
		runes := []rune(u.Email)
		return strings.ToUpper(string(runes[:min(2, len(runes))]))
	}
	return fallbackInitials
}

// BadgeCount returns the unread badge value and whether the badge shows at all.
func BadgeCount(u *models.SessionUser) (int, bool) {
	if u == nil || u.UnreadNotifications <= 0 {
		return 0, false
	}
	return min(u.UnreadNotifications, maxBadgeCount), true
}

// ProfileMenu is the signed-in user's account menu.
type ProfileMenu struct {
	mu       sync.Mutex
	store    *Store
	focus    Focuser
	tracker  Tracker
	logger   *zap.Logger
	navigate Navigator
	endSess  SessionEnder
	variant  Variant
	open     bool
}

type ProfileMenuConfig struct {
	Store      *Store
	Focus      Focuser
	Tracker    Tracker
	Logger     *zap.Logger
	Navigate   Navigator
	EndSession SessionEnder
	Variant    Variant
}

func NewProfileMenu(cfg ProfileMenuConfig) *ProfileMenu {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Variant == "" {
		cfg.Variant = VariantDesktop
	}
	return &ProfileMenu{
		store:    cfg.Store,
		focus:    cfg.Focus,
		tracker:  cfg.Tracker,
		logger:   cfg.Logger,
		navigate: cfg.Navigate,
		endSess:  cfg.EndSession,
		variant:  cfg.Variant,
	}
}

func (p *ProfileMenu) TriggerID() string   { return ProfileTriggerID(p.variant) }
func (p *ProfileMenu) ItemID(i int) string { return ProfileItemID(p.variant, i) }
func (p *ProfileMenu) Variant() Variant    { return p.variant }

// ItemCount includes the "Log out" entry.
func (p *ProfileMenu) ItemCount() int {
	return len(models.ProfileNav.Items) + 1
}

func (p *ProfileMenu) LogoutIndex() int {
	return len(models.ProfileNav.Items)
}

func (p *ProfileMenu) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Toggle handles a click on the avatar trigger. Opening focuses the first item and is tracked.
func (p *ProfileMenu) Toggle() {
	p.mu.Lock()
	p.open = !p.open
	opened := p.open
	p.mu.Unlock()
	if opened {
		p.focus.Focus(p.ItemID(0))
		track(context.Background(), p.tracker, p.logger, EventProfileOpen, nil)
	}
}

// TriggerKeyDown opens the menu on Arrow-Down and focuses the first item.
func (p *ProfileMenu) TriggerKeyDown(ev KeyEvent) bool {
	if ev.Key != KeyArrowDown {
		return false
	}
	p.mu.Lock()
	p.open = true
	p.mu.Unlock()
	p.focus.Focus(p.ItemID(0))
	return true
}

// ItemKeyDown handles keys on item i: arrows move circularly, Escape closes.
func (p *ProfileMenu) ItemKeyDown(i int, ev KeyEvent) bool {
	if !p.IsOpen() || i < 0 || i >= p.ItemCount() {
		return false
	}
	switch ev.Key {
	case KeyEscape:
		p.Close()
		return true
	case KeyArrowDown, KeyArrowUp:
		n := p.ItemCount()
		p.focus.Focus(p.ItemID((i + direction(ev.Key) + n) % n))
		return true
	case KeyEnter, KeySpace:
		p.Select(i)
		return true
	}
	return false
}

// Close hides the menu and refocuses the trigger.
func (p *ProfileMenu) Close() {
	p.mu.Lock()
	wasOpen := p.open
	p.open = false
	p.mu.Unlock()
	if wasOpen {
		p.focus.Focus(p.TriggerID())
	}
}

// Select activates item i. Links close the menu and navigate; the last item logs out.
func (p *ProfileMenu) Select(i int) {
	if i == p.LogoutIndex() {
		p.Logout(context.Background())
		return
	}
	if i < 0 || i >= len(models.ProfileNav.Items) {
		return
	}
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()
	if p.navigate != nil {
		p.navigate(models.ProfileNav.Items[i].URL)
	}
}

// Logout clears the user snapshot, ends the session and navigates to the
// signed-out landing page. Navigation happens even if ending the session fails.
func (p *ProfileMenu) Logout(ctx context.Context) {
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()

	track(ctx, p.tracker, p.logger, EventLogout, nil)
	p.store.SetUser(nil)
	if p.endSess != nil {
		if err := p.endSess(ctx); err != nil {
			p.logger.Warn("Failed to end session", zap.Error(err))
		}
	}
	if p.navigate != nil {
		p.navigate(signedOutLandingURL)
	}
}

// PointerDown closes the menu when target lies outside it, without moving focus.
func (p *ProfileMenu) PointerDown(target string) {
	if !p.IsOpen() || target == p.TriggerID() {
		return
	}
	for i := 0; i < p.ItemCount(); i++ {
		if target == p.ItemID(i) {
			return
		}
	}
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()
}
