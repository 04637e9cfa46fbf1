package navbar

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

const defaultRemoteTimeout = 5 * time.Second

// PreferenceWriter saves a signed-in user's currency outside the page, e.g. in the users table.
type PreferenceWriter interface {
	WriteCurrency(ctx context.Context, userID string, currency models.Currency) error
}

type EffectsConfig struct {
	Storage Storage
	Remote  PreferenceWriter
	Tracker Tracker
	Theme   ThemeSink
	Logger  *zap.Logger
	// RemoteTimeout bounds each background preference write.
	RemoteTimeout time.Duration
}

// Effects performs the side effects of store transitions: client storage,
// remote preference sync, analytics and the theme attribute.
// Failures are logged and never reach the store or its callers.
type Effects struct {
	storage Storage
	remote  PreferenceWriter
	tracker Tracker
	theme   ThemeSink
	logger  *zap.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

func NewEffects(cfg EffectsConfig) *Effects {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = defaultRemoteTimeout
	}
	return &Effects{
		storage: cfg.Storage,
		remote:  cfg.Remote,
		tracker: cfg.Tracker,
		theme:   cfg.Theme,
		logger:  cfg.Logger,
		timeout: cfg.RemoteTimeout,
	}
}

// Attach subscribes e to s and mirrors the current theme right away.
// The returned function detaches it.
func (e *Effects) Attach(s *Store) func() {
	if e.theme != nil {
		e.theme.SetTheme(s.State().ThemeMode)
	}
	return s.subscribe(e.handle, true)
}

// Wait blocks until outstanding remote writes finish. Callers never need to;
// it exists for shutdown and tests.
func (e *Effects) Wait() {
	e.wg.Wait()
}

func (e *Effects) handle(prev, next State, a Action) {
	if prev.ThemeMode != next.ThemeMode && e.theme != nil {
		e.theme.SetTheme(next.ThemeMode)
	}
	if a.Type == ActionSetCurrency && prev.Currency != next.Currency {
		e.currencyChanged(next)
	}
}

func (e *Effects) currencyChanged(next State) {
	l := e.logger.With(zap.String("method", "currencyChanged"), zap.String("currency", string(next.Currency)))

	if e.storage != nil {
		if err := e.storage.SetItem(CurrencyStorageKey, string(next.Currency)); err != nil {
			l.Warn("Failed to write currency to client storage", zap.Error(err))
		}
	}

	if e.remote != nil && next.User != nil && next.User.ID != "" {
		e.writeRemote(l, next.User.ID, next.Currency)
	}

	track(context.Background(), e.tracker, l, EventCurrencyChange, Payload{
		"currency": string(next.Currency),
		"gateway":  string(next.Currency.Gateway()),
	})
}

// writeRemote is fire-and-forget: it uses its own timeout rather than any request context.
func (e *Effects) writeRemote(l *zap.Logger, userID string, currency models.Currency) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				l.Error("Preference write panicked", zap.Any("panic", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		if err := e.remote.WriteCurrency(ctx, userID, currency); err != nil {
			l.Warn("Failed to persist currency preference", zap.String("user_id", userID), zap.Error(err))
			return
		}
		l.Debug("Currency preference persisted", zap.String("user_id", userID))
	}()
}
