package navbar

import (
	"sync"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

// Focuser moves keyboard focus between element ids.
type Focuser interface {
	Focus(id string)
	ActiveElement() string
}

// ScrollLocker suppresses body scroll while a modal is open. Locks nest.
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

// ThemeSink receives the theme mode mirrored onto the document.
type ThemeSink interface {
	SetTheme(mode models.ThemeMode)
}

// Document is an in-memory model of the focus, scroll and theme state of a page.
type Document struct {
	mu         sync.Mutex
	active     string
	scrollLock int
	theme      models.ThemeMode
	disabled   map[string]bool
}

func NewDocument() *Document {
	return &Document{disabled: make(map[string]bool)}
}

func (d *Document) Focus(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disabled[id] {
		return
	}
	d.active = id
}

func (d *Document) ActiveElement() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Document) LockScroll() {
	d.mu.Lock()
	d.scrollLock++
	d.mu.Unlock()
}

func (d *Document) UnlockScroll() {
	d.mu.Lock()
	if d.scrollLock > 0 {
		d.scrollLock--
	}
	d.mu.Unlock()
}

func (d *Document) ScrollLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollLock > 0
}

func (d *Document) SetTheme(mode models.ThemeMode) {
	d.mu.Lock()
	d.theme = mode
	d.mu.Unlock()
}

// Theme returns the last mirrored data-theme value.
func (d *Document) Theme() models.ThemeMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.theme
}

// SetDisabled marks id as unfocusable, like a disabled button.
func (d *Document) SetDisabled(id string, disabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if disabled {
		d.disabled[id] = true
		return
	}
	delete(d.disabled, id)
}

func (d *Document) IsDisabled(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disabled[id]
}
