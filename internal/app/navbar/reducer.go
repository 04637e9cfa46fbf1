package navbar

import "github.com/FACorreiaa/visiventur/internal/app/models"

type ActionType string

const (
	ActionSetCurrency  ActionType = "setCurrency"
	ActionSetThemeMode ActionType = "setThemeMode"
	ActionSetUser      ActionType = "setUser"
	ActionHydrate      ActionType = "hydrate"
)

// Action describes one state transition. Only the field matching Type is read.
type Action struct {
	Type      ActionType
	Currency  models.Currency
	ThemeMode models.ThemeMode
	User      *models.SessionUser
	// Stored is the raw value read from client storage during hydration.
	Stored string
}

// Reduce applies a to s. It has no side effects and never yields an
// unsupported currency or theme.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionSetCurrency:
		if a.Currency.Valid() {
			s.Currency = a.Currency
		}
	case ActionSetThemeMode:
		if a.ThemeMode.Valid() {
			s.ThemeMode = a.ThemeMode
		}
	case ActionSetUser:
		s.User = a.User
		if a.User != nil && a.User.IsPremium {
			s.ThemeMode = models.ThemePremium
		}
	case ActionHydrate:
		if s.HasHydrated {
			return s
		}
		if c := models.Currency(a.Stored); c.Valid() {
			s.Currency = c
		}
		s.HasHydrated = true
	}
	return s
}
