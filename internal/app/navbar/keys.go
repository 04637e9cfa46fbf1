package navbar

// Key names follow KeyboardEvent.key values so HTMX/JS bridges can forward them unchanged.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeySpace     Key = " "
	KeyEscape    Key = "Escape"
	KeyTab       Key = "Tab"
)

type KeyEvent struct {
	Key   Key
	Shift bool
}

func (k Key) activates() bool {
	return k == KeyEnter || k == KeySpace
}
