package navbar

import (
	"fmt"
	"sync"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

// Variant selects where an overlay is mounted. Each variant gets its own element ids.
type Variant string

const (
	VariantDesktop Variant = "desktop"
	VariantDrawer  Variant = "drawer"
)

func CurrencyTriggerID(v Variant) string { return "visiventur-currency-" + string(v) + "-trigger" }
func CurrencyListboxID(v Variant) string { return "visiventur-currency-" + string(v) + "-listbox" }

func CurrencyOptionID(v Variant, i int) string {
	return fmt.Sprintf("visiventur-currency-%s-option-%d", v, i)
}

// CurrencySelector is the listbox popup for choosing the display currency.
type CurrencySelector struct {
	mu      sync.Mutex
	store   *Store
	focus   Focuser
	variant Variant
	open    bool
	active  int
}

func NewCurrencySelector(store *Store, focus Focuser, variant Variant) *CurrencySelector {
	return &CurrencySelector{
		store:   store,
		focus:   focus,
		variant: variant,
	}
}

func (c *CurrencySelector) TriggerID() string     { return CurrencyTriggerID(c.variant) }
func (c *CurrencySelector) ListboxID() string     { return CurrencyListboxID(c.variant) }
func (c *CurrencySelector) OptionID(i int) string { return CurrencyOptionID(c.variant, i) }

func (c *CurrencySelector) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// ActiveIndex is the option keyboard traversal is on. Meaningful only while open.
func (c *CurrencySelector) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Disabled reports whether the trigger is inert. It stays disabled until the
// persisted currency has been read.
func (c *CurrencySelector) Disabled() bool {
	return !c.store.State().HasHydrated
}

// Label is the trigger text for the selected currency.
func (c *CurrencySelector) Label() string {
	return c.store.State().Currency.Label()
}

// Toggle handles a click on the trigger.
func (c *CurrencySelector) Toggle() {
	if c.IsOpen() {
		c.Close()
		return
	}
	c.Open()
}

// Open shows the list with the selected currency active and focused.
func (c *CurrencySelector) Open() {
	if c.Disabled() {
		return
	}
	idx := max(models.CurrencyIndex(c.store.State().Currency), 0)
	c.mu.Lock()
	c.open = true
	c.active = idx
	c.mu.Unlock()
	c.focus.Focus(c.OptionID(idx))
}

// Close hides the list without changing the selection and refocuses the trigger.
func (c *CurrencySelector) Close() {
	c.mu.Lock()
	wasOpen := c.open
	c.open = false
	c.mu.Unlock()
	if wasOpen {
		c.focus.Focus(c.TriggerID())
	}
}

// TriggerKeyDown handles a key on the trigger and reports whether it was consumed.
// Enter and Space toggle. Arrow keys open a closed list, or move within an open one.
func (c *CurrencySelector) TriggerKeyDown(ev KeyEvent) bool {
	if c.Disabled() {
		return false
	}
	switch {
	case ev.Key.activates():
		c.Toggle()
		return true
	case ev.Key == KeyArrowDown || ev.Key == KeyArrowUp:
		if !c.IsOpen() {
			c.Open()
			return true
		}
		c.move(direction(ev.Key))
		return true
	}
	return false
}

// OptionKeyDown handles a key on option i.
func (c *CurrencySelector) OptionKeyDown(i int, ev KeyEvent) bool {
	if !c.IsOpen() {
		return false
	}
	switch {
	case ev.Key == KeyArrowDown || ev.Key == KeyArrowUp:
		c.move(direction(ev.Key))
		return true
	case ev.Key.activates():
		c.ClickOption(i)
		return true
	case ev.Key == KeyEscape:
		c.Close()
		return true
	}
	return false
}

// ClickOption commits option i: the list closes, the trigger regains focus and
// the store is updated unless i is already selected.
func (c *CurrencySelector) ClickOption(i int) {
	if i < 0 || i >= len(models.Currencies) {
		return
	}
	c.Close()
	code := models.Currencies[i].Code
	if code == c.store.State().Currency {
		return
	}
	// code comes from the catalogue, so it is always valid.
	_ = c.store.SetCurrency(code)
}

// PointerDown closes the list when target is neither the trigger nor an option.
func (c *CurrencySelector) PointerDown(target string) {
	if !c.IsOpen() || c.contains(target) {
		return
	}
	c.Close()
}

func (c *CurrencySelector) contains(id string) bool {
	if id == c.TriggerID() || id == c.ListboxID() {
		return true
	}
	for i := range models.Currencies {
		if id == c.OptionID(i) {
			return true
		}
	}
	return false
}

func (c *CurrencySelector) move(dir int) {
	n := len(models.Currencies)
	c.mu.Lock()
	c.active = (c.active + dir + n) % n
	next := c.active
	c.mu.Unlock()
	c.focus.Focus(c.OptionID(next))
}

func direction(k Key) int {
	if k == KeyArrowUp {
		return -1
	}
	return 1
}
