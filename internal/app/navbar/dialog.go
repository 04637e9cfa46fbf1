package navbar

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	HelpDialogID       = "visiventur-help-dialog"
	HelpButtonID       = "visiventur-help-button"
	HelpCloseID        = "visiventur-help-close"
	HelpFAQID          = "visiventur-help-faq"
	HelpEmailID        = "visiventur-help-email"
	HelpPhoneID        = "visiventur-help-phone"
	HelpChatID         = "visiventur-help-chat"
	DrawerID           = "visiventur-mobile-drawer"
	DrawerToggleID     = "visiventur-drawer-toggle"
	DrawerCloseID      = "visiventur-drawer-close"
	DrawerHelpButtonID = "visiventur-drawer-help"

	SupportEmail        = "support@visiventur.com"
	SupportPhone        = "+18005552048"
	SupportPhoneDisplay = "+1 (800) 555-2048"
	FAQURL              = "/help/faq"
)

// disabledChecker is implemented by focus models that know about disabled elements.
type disabledChecker interface {
	IsDisabled(id string) bool
}

// DialogConfig describes a modal dialog. Focusables lists the focusable
// descendants in document order and is re-evaluated on every use.
type DialogConfig struct {
	ID         string
	Focus      Focuser
	Scroll     ScrollLocker
	Tracker    Tracker
	Logger     *zap.Logger
	OpenEvent  Event
	CloseEvent Event
	Focusables func() []string
}

// Dialog is a modal overlay that traps focus while open and restores it on close.
type Dialog struct {
	mu      sync.Mutex
	cfg     DialogConfig
	open    bool
	restore string
}

func NewDialog(cfg DialogConfig) *Dialog {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Focusables == nil {
		cfg.Focusables = func() []string { return nil }
	}
	return &Dialog{cfg: cfg}
}

func (d *Dialog) ID() string         { return d.cfg.ID }
func (d *Dialog) BackdropID() string { return d.cfg.ID + "-backdrop" }

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Open remembers the focused element, locks body scroll and focuses the first focusable descendant.
func (d *Dialog) Open() {
	d.mu.Lock()
	if d.open {
		d.mu.Unlock()
		return
	}
	d.open = true
	d.restore = d.cfg.Focus.ActiveElement()
	d.mu.Unlock()

	if d.cfg.Scroll != nil {
		d.cfg.Scroll.LockScroll()
	}
	if items := d.focusables(); len(items) > 0 {
		d.cfg.Focus.Focus(items[0])
	}
	if d.cfg.OpenEvent != "" {
		track(context.Background(), d.cfg.Tracker, d.cfg.Logger, d.cfg.OpenEvent, nil)
	}
}

// Close releases the scroll lock and returns focus to the element focused before Open.
func (d *Dialog) Close() {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return
	}
	d.open = false
	restore := d.restore
	d.restore = ""
	d.mu.Unlock()

	if d.cfg.Scroll != nil {
		d.cfg.Scroll.UnlockScroll()
	}
	if restore != "" {
		d.cfg.Focus.Focus(restore)
	}
	if d.cfg.CloseEvent != "" {
		track(context.Background(), d.cfg.Tracker, d.cfg.Logger, d.cfg.CloseEvent, nil)
	}
}

// SetOpen opens or closes the dialog.
func (d *Dialog) SetOpen(open bool) {
	if open {
		d.Open()
		return
	}
	d.Close()
}

// KeyDown handles a document-level key while the dialog is open.
// Escape closes. Tab and Shift+Tab cycle through the focusables and never leave the dialog.
func (d *Dialog) KeyDown(ev KeyEvent) bool {
	if !d.IsOpen() {
		return false
	}
	switch ev.Key {
	case KeyEscape:
		d.Close()
		return true
	case KeyTab:
		d.cycle(ev.Shift)
		return true
	}
	return false
}

// Click handles a click on target. Only the backdrop itself dismisses.
func (d *Dialog) Click(target string) {
	if target == d.BackdropID() {
		d.Close()
	}
}

func (d *Dialog) cycle(backward bool) {
	items := d.focusables()
	if len(items) == 0 {
		return
	}
	current := -1
	active := d.cfg.Focus.ActiveElement()
	for i, id := range items {
		if id == active {
			current = i
			break
		}
	}

	var next int
	switch {
	case current < 0 && backward:
		next = len(items) - 1
	case current < 0:
		next = 0
	case backward:
		next = (current - 1 + len(items)) % len(items)
	default:
		next = (current + 1) % len(items)
	}
	d.cfg.Focus.Focus(items[next])
}

func (d *Dialog) focusables() []string {
	all := d.cfg.Focusables()
	checker, ok := d.cfg.Focus.(disabledChecker)
	if !ok {
		return all
	}
	out := make([]string, 0, len(all))
	for _, id := range all {
		if !checker.IsDisabled(id) {
			out = append(out, id)
		}
	}
	return out
}

// HelpFocusables lists the help modal's focusable elements. The chat
// assistant is offered to signed-in users only.
func HelpFocusables(authenticated bool) []string {
	ids := []string{HelpCloseID, HelpFAQID, HelpEmailID, HelpPhoneID}
	if authenticated {
		ids = append(ids, HelpChatID)
	}
	return ids
}

// NewHelpModal builds the help and concierge dialog.
func NewHelpModal(focus Focuser, scroll ScrollLocker, tracker Tracker, logger *zap.Logger, authenticated func() bool) *Dialog {
	return NewDialog(DialogConfig{
		ID:        HelpDialogID,
		Focus:     focus,
		Scroll:    scroll,
		Tracker:   tracker,
		Logger:    logger,
		OpenEvent: EventHelpOpen,
		Focusables: func() []string {
			return HelpFocusables(authenticated())
		},
	})
}

// NewMobileDrawer builds the small-screen navigation drawer.
func NewMobileDrawer(focus Focuser, scroll ScrollLocker, tracker Tracker, logger *zap.Logger, focusables func() []string) *Dialog {
	return NewDialog(DialogConfig{
		ID:         DrawerID,
		Focus:      focus,
		Scroll:     scroll,
		Tracker:    tracker,
		Logger:     logger,
		OpenEvent:  EventDrawerOpen,
		CloseEvent: EventMobileMenuClose,
		Focusables: focusables,
	})
}
