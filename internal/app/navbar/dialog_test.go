package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDialog(doc *Document, rec *Recorder, ids ...string) *Dialog {
	var tracker Tracker
	if rec != nil {
		tracker = rec
	}
	return NewDialog(DialogConfig{
		ID:         "test-dialog",
		Focus:      doc,
		Scroll:     doc,
		Tracker:    tracker,
		OpenEvent:  EventHelpOpen,
		CloseEvent: EventMobileMenuClose,
		Focusables: func() []string { return ids },
	})
}

func TestDialogOpenClose(t *testing.T) {
	doc := NewDocument()
	rec := &Recorder{}
	d := newTestDialog(doc, rec, "close", "faq", "email")

	doc.Focus("opener")
	d.Open()

	require.True(t, d.IsOpen())
	assert.Equal(t, "close", doc.ActiveElement())
	assert.True(t, doc.ScrollLocked())
	assert.Len(t, rec.Named(EventHelpOpen), 1)

	d.Open()
	assert.Len(t, rec.Named(EventHelpOpen), 1, "opening twice is a no-op")

	assert.True(t, d.KeyDown(KeyEvent{Key: KeyEscape}))
	assert.False(t, d.IsOpen())
	assert.Equal(t, "opener", doc.ActiveElement())
	assert.False(t, doc.ScrollLocked())
	assert.Len(t, rec.Named(EventMobileMenuClose), 1)
}

func TestDialogFocusTrap(t *testing.T) {
	doc := NewDocument()
	d := newTestDialog(doc, nil, "close", "faq", "email")
	doc.Focus("opener")
	d.Open()

	t.Run("tab past last wraps to first", func(t *testing.T) {
		doc.Focus("email")
		assert.True(t, d.KeyDown(KeyEvent{Key: KeyTab}))
		assert.Equal(t, "close", doc.ActiveElement())
	})

	t.Run("shift tab before first wraps to last", func(t *testing.T) {
		doc.Focus("close")
		assert.True(t, d.KeyDown(KeyEvent{Key: KeyTab, Shift: true}))
		assert.Equal(t, "email", doc.ActiveElement())
	})

	t.Run("tab moves forward inside", func(t *testing.T) {
		doc.Focus("close")
		d.KeyDown(KeyEvent{Key: KeyTab})
		assert.Equal(t, "faq", doc.ActiveElement())
	})

	t.Run("full cycle never leaves the dialog", func(t *testing.T) {
		inside := map[string]bool{"close": true, "faq": true, "email": true}
		for i := 0; i < 10; i++ {
			d.KeyDown(KeyEvent{Key: KeyTab, Shift: i%3 == 0})
			assert.True(t, inside[doc.ActiveElement()], doc.ActiveElement())
		}
	})

	t.Run("focus outside is pulled back in", func(t *testing.T) {
		doc.Focus("page-footer")
		d.KeyDown(KeyEvent{Key: KeyTab})
		assert.Equal(t, "close", doc.ActiveElement())

		doc.Focus("page-footer")
		d.KeyDown(KeyEvent{Key: KeyTab, Shift: true})
		assert.Equal(t, "email", doc.ActiveElement())
	})

	t.Run("other keys pass through", func(t *testing.T) {
		assert.False(t, d.KeyDown(KeyEvent{Key: KeyArrowDown}))
	})
}

func TestDialogWithoutFocusables(t *testing.T) {
	doc := NewDocument()
	d := newTestDialog(doc, nil)
	doc.Focus("opener")
	d.Open()

	assert.Equal(t, "opener", doc.ActiveElement())
	assert.True(t, d.KeyDown(KeyEvent{Key: KeyTab}), "tab is swallowed")
	assert.Equal(t, "opener", doc.ActiveElement())
}

func TestDialogSkipsDisabled(t *testing.T) {
	doc := NewDocument()
	doc.SetDisabled("faq", true)
	d := newTestDialog(doc, nil, "faq", "email", "phone")
	d.Open()
	assert.Equal(t, "email", doc.ActiveElement())

	doc.Focus("phone")
	d.KeyDown(KeyEvent{Key: KeyTab})
	assert.Equal(t, "email", doc.ActiveElement())
}

func TestDialogClicks(t *testing.T) {
	doc := NewDocument()
	d := newTestDialog(doc, nil, "close")
	doc.Focus("opener")
	d.Open()

	d.Click(d.ID())
	d.Click("close")
	assert.True(t, d.IsOpen(), "clicks inside the body do not dismiss")

	d.Click(d.BackdropID())
	assert.False(t, d.IsOpen())
	assert.Equal(t, "opener", doc.ActiveElement())
}

func TestDialogKeysIgnoredWhenClosed(t *testing.T) {
	d := newTestDialog(NewDocument(), nil, "close")
	assert.False(t, d.KeyDown(KeyEvent{Key: KeyEscape}))
	assert.False(t, d.KeyDown(KeyEvent{Key: KeyTab}))
}

func TestNestedScrollLocks(t *testing.T) {
	doc := NewDocument()
	a := newTestDialog(doc, nil, "a")
	b := newTestDialog(doc, nil, "b")
	a.Open()
	b.Open()
	b.Close()
	assert.True(t, doc.ScrollLocked())
	a.Close()
	assert.False(t, doc.ScrollLocked())
}

func TestHelpFocusables(t *testing.T) {
	assert.NotContains(t, HelpFocusables(false), HelpChatID)
	assert.Equal(t, HelpChatID, HelpFocusables(true)[len(HelpFocusables(true))-1])
	assert.Equal(t, HelpCloseID, HelpFocusables(false)[0])
}
