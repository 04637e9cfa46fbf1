package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

func hydratedSelector(t *testing.T, initial string) (*CurrencySelector, *Store, *Document) {
	t.Helper()
	store := NewStore(Options{InitialCurrency: initial})
	store.Hydrate(NewMemoryStorage())
	doc := NewDocument()
	return NewCurrencySelector(store, doc, VariantDesktop), store, doc
}

func TestCurrencySelectorOpen(t *testing.T) {
	for i, info := range models.Currencies {
		t.Run(string(info.Code), func(t *testing.T) {
			sel, _, doc := hydratedSelector(t, string(info.Code))
			sel.Toggle()

			require.True(t, sel.IsOpen())
			assert.Equal(t, i, sel.ActiveIndex())
			assert.Equal(t, sel.OptionID(i), doc.ActiveElement())
		})
	}
}

func TestCurrencySelectorDisabledUntilHydrated(t *testing.T) {
	store := NewStore(Options{})
	doc := NewDocument()
	sel := NewCurrencySelector(store, doc, VariantDesktop)

	assert.True(t, sel.Disabled())
	sel.Toggle()
	assert.False(t, sel.IsOpen())
	assert.False(t, sel.TriggerKeyDown(KeyEvent{Key: KeyEnter}))

	store.Hydrate(nil)
	assert.False(t, sel.Disabled())
	assert.True(t, sel.TriggerKeyDown(KeyEvent{Key: KeyEnter}))
	assert.True(t, sel.IsOpen())
}

func TestCurrencySelectorTraversal(t *testing.T) {
	t.Run("arrow down wraps from last to first", func(t *testing.T) {
		sel, _, doc := hydratedSelector(t, "GBP")
		sel.Open()
		require.Equal(t, 3, sel.ActiveIndex())

		assert.True(t, sel.OptionKeyDown(3, KeyEvent{Key: KeyArrowDown}))
		assert.Equal(t, 0, sel.ActiveIndex())
		assert.Equal(t, sel.OptionID(0), doc.ActiveElement())
	})

	t.Run("arrow up wraps from first to last", func(t *testing.T) {
		sel, _, doc := hydratedSelector(t, "INR")
		sel.Open()
		require.Equal(t, 0, sel.ActiveIndex())

		assert.True(t, sel.OptionKeyDown(0, KeyEvent{Key: KeyArrowUp}))
		assert.Equal(t, 3, sel.ActiveIndex())
		assert.Equal(t, sel.OptionID(3), doc.ActiveElement())
	})

	t.Run("arrow on closed trigger opens on the selection", func(t *testing.T) {
		sel, _, doc := hydratedSelector(t, "EUR")
		assert.True(t, sel.TriggerKeyDown(KeyEvent{Key: KeyArrowUp}))
		assert.True(t, sel.IsOpen())
		assert.Equal(t, sel.OptionID(2), doc.ActiveElement())

		assert.True(t, sel.TriggerKeyDown(KeyEvent{Key: KeyArrowDown}))
		assert.Equal(t, sel.OptionID(3), doc.ActiveElement())
	})

	t.Run("space toggles", func(t *testing.T) {
		sel, _, _ := hydratedSelector(t, "USD")
		sel.TriggerKeyDown(KeyEvent{Key: KeySpace})
		assert.True(t, sel.IsOpen())
		sel.TriggerKeyDown(KeyEvent{Key: KeySpace})
		assert.False(t, sel.IsOpen())
	})

	t.Run("unhandled keys pass through", func(t *testing.T) {
		sel, _, _ := hydratedSelector(t, "USD")
		assert.False(t, sel.TriggerKeyDown(KeyEvent{Key: KeyTab}))
		sel.Open()
		assert.False(t, sel.OptionKeyDown(1, KeyEvent{Key: KeyTab}))
	})
}

func TestCurrencySelectorCommit(t *testing.T) {
	t.Run("enter commits the option and refocuses trigger", func(t *testing.T) {
		sel, store, doc := hydratedSelector(t, "USD")
		sel.Open()
		sel.OptionKeyDown(1, KeyEvent{Key: KeyArrowDown})

		assert.True(t, sel.OptionKeyDown(2, KeyEvent{Key: KeyEnter}))
		assert.False(t, sel.IsOpen())
		assert.Equal(t, models.CurrencyEUR, store.State().Currency)
		assert.Equal(t, sel.TriggerID(), doc.ActiveElement())
		assert.Equal(t, "€ EUR", sel.Label())
	})

	t.Run("clicking the selected option changes nothing", func(t *testing.T) {
		sel, store, _ := hydratedSelector(t, "USD")
		var notified bool
		store.Subscribe(func(State, State, Action) { notified = true })

		sel.Open()
		sel.ClickOption(1)
		assert.False(t, sel.IsOpen())
		assert.False(t, notified)
	})

	t.Run("out of range click is ignored", func(t *testing.T) {
		sel, store, _ := hydratedSelector(t, "USD")
		sel.Open()
		sel.ClickOption(7)
		assert.True(t, sel.IsOpen())
		assert.Equal(t, models.CurrencyUSD, store.State().Currency)
	})
}

func TestCurrencySelectorDismiss(t *testing.T) {
	t.Run("escape closes without change", func(t *testing.T) {
		sel, store, doc := hydratedSelector(t, "GBP")
		sel.Open()
		sel.OptionKeyDown(3, KeyEvent{Key: KeyArrowDown})

		assert.True(t, sel.OptionKeyDown(0, KeyEvent{Key: KeyEscape}))
		assert.False(t, sel.IsOpen())
		assert.Equal(t, models.CurrencyGBP, store.State().Currency)
		assert.Equal(t, sel.TriggerID(), doc.ActiveElement())
	})

	t.Run("pointer outside closes", func(t *testing.T) {
		sel, _, doc := hydratedSelector(t, "USD")
		sel.Open()
		sel.PointerDown("main-content")
		assert.False(t, sel.IsOpen())
		assert.Equal(t, sel.TriggerID(), doc.ActiveElement())
	})

	t.Run("pointer on trigger or option keeps it open", func(t *testing.T) {
		sel, _, _ := hydratedSelector(t, "USD")
		sel.Open()
		sel.PointerDown(sel.OptionID(2))
		sel.PointerDown(sel.TriggerID())
		assert.True(t, sel.IsOpen())
	})
}

func TestCurrencySelectorVariantsHaveDistinctIDs(t *testing.T) {
	store := NewStore(Options{})
	doc := NewDocument()
	a := NewCurrencySelector(store, doc, VariantDesktop)
	b := NewCurrencySelector(store, doc, VariantDrawer)
	assert.NotEqual(t, a.TriggerID(), b.TriggerID())
	assert.NotEqual(t, a.OptionID(0), b.OptionID(0))
}
