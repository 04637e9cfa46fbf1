package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

func TestInitialState(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := InitialState(Options{})
		assert.Equal(t, models.CurrencyUSD, s.Currency)
		assert.Equal(t, models.ThemeLight, s.ThemeMode)
		assert.False(t, s.HasHydrated)
		assert.Nil(t, s.User)
	})

	t.Run("cookie currency wins over user preference", func(t *testing.T) {
		s := InitialState(Options{InitialCurrency: "INR", User: premiumUser()})
		assert.Equal(t, models.CurrencyINR, s.Currency)
	})

	t.Run("invalid cookie falls back to user preference", func(t *testing.T) {
		s := InitialState(Options{InitialCurrency: "JPY", User: premiumUser()})
		assert.Equal(t, models.CurrencyGBP, s.Currency)
	})

	t.Run("premium user seeds premium theme", func(t *testing.T) {
		s := InitialState(Options{User: premiumUser()})
		assert.Equal(t, models.ThemePremium, s.ThemeMode)
	})

	t.Run("explicit theme wins", func(t *testing.T) {
		s := InitialState(Options{User: premiumUser(), InitialThemeMode: models.ThemeDark})
		assert.Equal(t, models.ThemeDark, s.ThemeMode)
	})
}

func TestReduce(t *testing.T) {
	t.Run("ignores unsupported currency", func(t *testing.T) {
		s := Reduce(State{Currency: models.CurrencyEUR}, Action{Type: ActionSetCurrency, Currency: "XXX"})
		assert.Equal(t, models.CurrencyEUR, s.Currency)
	})

	t.Run("premium theme is sticky after downgrade", func(t *testing.T) {
		s := Reduce(State{ThemeMode: models.ThemeLight}, Action{Type: ActionSetUser, User: premiumUser()})
		assert.Equal(t, models.ThemePremium, s.ThemeMode)

		downgraded := premiumUser()
		downgraded.IsPremium = false
		s = Reduce(s, Action{Type: ActionSetUser, User: downgraded})
		assert.Equal(t, models.ThemePremium, s.ThemeMode)

		s = Reduce(s, Action{Type: ActionSetUser})
		assert.Nil(t, s.User)
		assert.Equal(t, models.ThemePremium, s.ThemeMode)
	})

	t.Run("hydrate applies a valid stored value once", func(t *testing.T) {
		s := Reduce(State{Currency: models.CurrencyUSD}, Action{Type: ActionHydrate, Stored: "EUR"})
		assert.Equal(t, models.CurrencyEUR, s.Currency)
		assert.True(t, s.HasHydrated)

		s = Reduce(s, Action{Type: ActionHydrate, Stored: "GBP"})
		assert.Equal(t, models.CurrencyEUR, s.Currency)
	})

	t.Run("hydrate discards invalid stored value", func(t *testing.T) {
		s := Reduce(State{Currency: models.CurrencyINR}, Action{Type: ActionHydrate, Stored: "bitcoin"})
		assert.Equal(t, models.CurrencyINR, s.Currency)
		assert.True(t, s.HasHydrated)
	})
}

func TestStore(t *testing.T) {
	t.Run("set currency rejects unsupported code", func(t *testing.T) {
		s := NewStore(Options{})
		err := s.SetCurrency("XXX")
		require.ErrorIs(t, err, models.ErrInvalidCurrency)
		assert.Equal(t, models.CurrencyUSD, s.State().Currency)
	})

	t.Run("set theme rejects unknown mode", func(t *testing.T) {
		s := NewStore(Options{})
		require.ErrorIs(t, s.SetThemeMode("sepia"), models.ErrInvalidTheme)
		require.NoError(t, s.SetThemeMode(models.ThemeDark))
		assert.Equal(t, models.ThemeDark, s.State().ThemeMode)
	})

	t.Run("listeners see committed state and can unsubscribe", func(t *testing.T) {
		s := NewStore(Options{})
		var calls int
		unsubscribe := s.Subscribe(func(prev, next State, a Action) {
			calls++
			assert.Equal(t, models.CurrencyUSD, prev.Currency)
			assert.Equal(t, next, s.State())
			assert.Equal(t, ActionSetCurrency, a.Type)
		})

		require.NoError(t, s.SetCurrency(models.CurrencyEUR))
		assert.Equal(t, 1, calls)

		require.NoError(t, s.SetCurrency(models.CurrencyEUR))
		assert.Equal(t, 1, calls, "unchanged currency must not notify")

		unsubscribe()
		require.NoError(t, s.SetCurrency(models.CurrencyGBP))
		assert.Equal(t, 1, calls)
	})

	t.Run("set user stores a copy", func(t *testing.T) {
		s := NewStore(Options{})
		u := premiumUser()
		s.SetUser(u)
		u.Name = "changed"
		assert.Equal(t, "Ada Lovelace", s.State().User.Name)
		assert.Equal(t, models.ThemePremium, s.State().ThemeMode)
	})

	t.Run("hydrate reads storage once", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.SetItem(CurrencyStorageKey, "INR"))

		s := NewStore(Options{InitialCurrency: "USD"})
		s.Hydrate(storage)
		assert.Equal(t, models.CurrencyINR, s.State().Currency)
		assert.True(t, s.State().HasHydrated)

		require.NoError(t, storage.SetItem(CurrencyStorageKey, "EUR"))
		s.Hydrate(storage)
		assert.Equal(t, models.CurrencyINR, s.State().Currency)
	})

	t.Run("hydrate without stored value keeps seed", func(t *testing.T) {
		s := NewStore(Options{InitialCurrency: "GBP"})
		s.Hydrate(NewMemoryStorage())
		assert.Equal(t, models.CurrencyGBP, s.State().Currency)
		assert.True(t, s.State().HasHydrated)

		other := NewStore(Options{})
		other.Hydrate(nil)
		assert.True(t, other.State().HasHydrated)
	})

	t.Run("independent instances", func(t *testing.T) {
		a := NewStore(Options{})
		b := NewStore(Options{})
		require.NoError(t, a.SetCurrency(models.CurrencyINR))
		assert.Equal(t, models.CurrencyUSD, b.State().Currency)
	})
}
