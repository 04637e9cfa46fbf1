package navbar

import (
	"fmt"
	"sync"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

// State is the navbar's shared view state.
type State struct {
	Currency    models.Currency
	ThemeMode   models.ThemeMode
	User        *models.SessionUser
	HasHydrated bool
}

func (s State) Authenticated() bool {
	return s.User != nil
}

// Options seed a store from server-rendered values.
type Options struct {
	// InitialCurrency is usually read from the preference cookie. Unsupported values are ignored.
	InitialCurrency  string
	InitialThemeMode models.ThemeMode
	User             *models.SessionUser
}

// InitialState resolves the seeded currency and theme.
// Currency: initial, then the user's preference, then USD.
// Theme: initial, then premium for premium users, then light.
func InitialState(opts Options) State {
	s := State{
		Currency:  models.DefaultCurrency,
		ThemeMode: models.ThemeLight,
		User:      cloneUser(opts.User),
	}
	switch {
	case models.Currency(opts.InitialCurrency).Valid():
		s.Currency = models.Currency(opts.InitialCurrency)
	case opts.User != nil && opts.User.PreferredCurrency.Valid():
		s.Currency = opts.User.PreferredCurrency
	}
	switch {
	case opts.InitialThemeMode.Valid():
		s.ThemeMode = opts.InitialThemeMode
	case opts.User != nil && opts.User.IsPremium:
		s.ThemeMode = models.ThemePremium
	}
	return s
}

// Listener observes a committed transition. It runs synchronously on the
// mutating goroutine, after the new state is visible to State().
type Listener func(prev, next State, action Action)

// Store is the single writer of the navbar state. Create one per page render.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []listenerEntry
	nextID    int
}

type listenerEntry struct {
	id     int
	fn     Listener
	effect bool
}

func NewStore(opts Options) *Store {
	return &Store{state: InitialState(opts)}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.User = cloneUser(st.User)
	return st
}

// Subscribe registers fn and returns a function that removes it.
// Subscribers run in registration order, before any side effect of the same transition.
func (s *Store) Subscribe(fn Listener) func() {
	return s.subscribe(fn, false)
}

func (s *Store) subscribe(fn Listener, effect bool) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn, effect: effect})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetCurrency selects code. Selecting the current currency does nothing.
func (s *Store) SetCurrency(code models.Currency) error {
	if !code.Valid() {
		return fmt.Errorf("set currency %q: %w", code, models.ErrInvalidCurrency)
	}
	s.dispatch(Action{Type: ActionSetCurrency, Currency: code})
	return nil
}

func (s *Store) SetThemeMode(mode models.ThemeMode) error {
	if !mode.Valid() {
		return fmt.Errorf("set theme %q: %w", mode, models.ErrInvalidTheme)
	}
	s.dispatch(Action{Type: ActionSetThemeMode, ThemeMode: mode})
	return nil
}

// SetUser replaces the authenticated user snapshot. nil signs out.
// A premium user forces the premium theme; a later non-premium user does not revert it.
func (s *Store) SetUser(user *models.SessionUser) {
	s.dispatch(Action{Type: ActionSetUser, User: cloneUser(user)})
}

// Hydrate applies a currency persisted in storage. Only the first call has
// an effect, and it marks the store hydrated whether or not a value was found.
func (s *Store) Hydrate(storage Storage) {
	var stored string
	if storage != nil {
		stored, _ = storage.GetItem(CurrencyStorageKey)
	}
	s.dispatch(Action{Type: ActionHydrate, Stored: stored})
}

func (s *Store) dispatch(a Action) {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	if !changed(prev, next) {
		s.mu.Unlock()
		return
	}
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		if !l.effect {
			listeners = append(listeners, l.fn)
		}
	}
	for _, l := range s.listeners {
		if l.effect {
			listeners = append(listeners, l.fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(prev, next, a)
	}
}

func changed(prev, next State) bool {
	return prev.Currency != next.Currency ||
		prev.ThemeMode != next.ThemeMode ||
		prev.HasHydrated != next.HasHydrated ||
		prev.User != next.User
}

func cloneUser(u *models.SessionUser) *models.SessionUser {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
