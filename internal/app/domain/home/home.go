package home

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/components/header"
	"github.com/FACorreiaa/visiventur/internal/app/domain"
	"github.com/FACorreiaa/visiventur/internal/app/domain/preferences"
	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/navbar"
	"github.com/FACorreiaa/visiventur/internal/pkg/cache"
)

// ThemeStorageKey holds the visitor's theme choice next to the stored currency.
const ThemeStorageKey = "visiventur.theme"

type Config struct {
	Visitors *cache.VisitorCache
	// Remote persists a signed-in user's currency in-process. Ignored when Beacon is set.
	Remote navbar.PreferenceWriter
	// Beacon persists it by calling the preference endpoint with the caller's session token.
	Beacon        *navbar.BeaconClient
	Tracker       navbar.Tracker
	RemoteTimeout time.Duration
	SecureCookies bool
}

type HomeHandlers struct {
	*domain.BaseHandler
	cfg Config
}

func NewHomeHandlers(base *domain.BaseHandler, cfg Config) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base, cfg: cfg}
}

// page is the navbar wiring for one request.
type page struct {
	nav     *navbar.Navbar
	store   *navbar.Store
	storage navbar.Storage
}

func (h *HomeHandlers) newPage(c *gin.Context) *page {
	user := middleware.GetSessionUser(c)
	storage := h.cfg.Visitors.For(middleware.GetVisitorID(c))

	opts := navbar.Options{User: user}
	if currency, ok := preferences.CurrencyFromRequest(c); ok {
		opts.InitialCurrency = string(currency)
	}
	if stored, ok := storage.GetItem(ThemeStorageKey); ok {
		opts.InitialThemeMode = models.ThemeMode(stored)
	}

	store := navbar.NewStore(opts)
	doc := navbar.NewDocument()
	effects := navbar.NewEffects(navbar.EffectsConfig{
		Storage:       storage,
		Remote:        h.remote(c),
		Tracker:       h.cfg.Tracker,
		Theme:         doc,
		Logger:        h.Logger,
		RemoteTimeout: h.cfg.RemoteTimeout,
	})
	effects.Attach(store)
	store.Hydrate(storage)

	nav := navbar.New(navbar.Config{
		Store:   store,
		Focus:   doc,
		Scroll:  doc,
		Tracker: h.cfg.Tracker,
		Logger:  h.Logger,
		Path:    currentPath(c),
	})
	return &page{nav: nav, store: store, storage: storage}
}

func (h *HomeHandlers) remote(c *gin.Context) navbar.PreferenceWriter {
	if h.cfg.Beacon == nil {
		return h.cfg.Remote
	}
	token, err := c.Cookie(middleware.AuthCookieName)
	if err != nil || token == "" {
		return nil
	}
	return h.cfg.Beacon.WithToken(token)
}

// currentPath prefers the page URL HTMX reports, so fragment swaps keep the active link.
func currentPath(c *gin.Context) string {
	if raw := c.GetHeader("HX-Current-URL"); raw != "" {
		if u, err := url.Parse(raw); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return c.Request.URL.Path
}

// ShowHomePage handles GET /.
func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	p := h.newPage(c)
	st := p.store.State()

	layout := h.NewLayoutData(c, "Visiventur - Travel booking", "Home", header.Hero(st.Currency))
	layout.Currency = st.Currency
	layout.ThemeMode = st.ThemeMode
	h.RenderPage(c, layout, header.Navbar(header.Props{Snapshot: p.nav.Snapshot()}))
}

// SetCurrency handles POST /navbar/currency and returns the refreshed navbar.
func (h *HomeHandlers) SetCurrency(c *gin.Context) {
	p := h.newPage(c)
	currency := models.Currency(c.PostForm("currency"))
	before := p.store.State().Currency
	if err := p.store.SetCurrency(currency); err != nil {
		h.Logger.Warn("Rejected navbar currency", zap.String("currency", string(currency)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
		return
	}
	if p.store.State().Currency != before {
		preferences.SetCurrencyCookie(c, currency, h.cfg.SecureCookies)
	}
	h.renderNavbar(c, p)
}

// SetTheme handles POST /navbar/theme and returns the refreshed navbar.
func (h *HomeHandlers) SetTheme(c *gin.Context) {
	p := h.newPage(c)
	mode := models.ThemeMode(c.PostForm("theme"))
	if err := p.store.SetThemeMode(mode); err != nil {
		h.Logger.Warn("Rejected navbar theme", zap.String("theme", string(mode)), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported theme"})
		return
	}
	if err := p.storage.SetItem(ThemeStorageKey, string(mode)); err != nil {
		h.Logger.Warn("Failed to store theme", zap.Error(err))
	}
	h.renderNavbar(c, p)
}

func (h *HomeHandlers) renderNavbar(c *gin.Context, p *page) {
	h.RenderFragment(c, http.StatusOK, "navbar", header.Navbar(header.Props{Snapshot: p.nav.Snapshot()}))
}
