package models

import "fmt"

// ThemeMode is reflected onto the document's data-theme attribute.
type ThemeMode string

const (
	ThemeLight   ThemeMode = "light"
	ThemeDark    ThemeMode = "dark"
	ThemePremium ThemeMode = "premium"
)

func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemePremium:
		return true
	}
	return false
}

func ParseThemeMode(s string) (ThemeMode, error) {
	m := ThemeMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidTheme)
	}
	return m, nil
}
