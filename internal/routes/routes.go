package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/domain"
	"github.com/FACorreiaa/visiventur/internal/app/domain/auth"
	"github.com/FACorreiaa/visiventur/internal/app/domain/home"
	"github.com/FACorreiaa/visiventur/internal/app/domain/payments"
	"github.com/FACorreiaa/visiventur/internal/app/domain/preferences"
	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/navbar"
	"github.com/FACorreiaa/visiventur/internal/app/observability/metrics"
	"github.com/FACorreiaa/visiventur/internal/pkg/cache"
	"github.com/FACorreiaa/visiventur/internal/pkg/config"
)

type AppHandlers struct {
	Home        *home.HomeHandlers
	Auth        *auth.AuthHandlers
	Google      *auth.GoogleAuth
	Preferences *preferences.PreferencesHandlers
	Payments    *payments.PaymentsHandlers

	tokens *middleware.JWTService
	users  middleware.UserLoader
}

// Setup builds every handler and mounts the routes on r.
func Setup(ctx context.Context, r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, log *zap.Logger) error {
	handlers, err := setupDependencies(ctx, cfg, dbPool, log)
	if err != nil {
		return err
	}
	setupRouter(r, cfg, handlers, dbPool, log)
	return nil
}

func setupDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, log *zap.Logger) (*AppHandlers, error) {
	baseHandler := domain.NewBaseHandler(log)
	tokens := middleware.NewJWTService(cfg.JWT)

	// Repositories
	authRepo := auth.NewPostgresAuthRepo(dbPool, log)
	preferencesRepo := preferences.NewPostgresPreferencesRepo(dbPool, log)

	// Services
	authService := auth.NewAuthService(authRepo, tokens, log)
	preferencesService := preferences.NewPreferencesService(preferencesRepo, log)

	var providers []payments.Provider
	if cfg.Payments.StripeSecretKey != "" {
		providers = append(providers, payments.NewStripeProvider(cfg.Payments.StripeSecretKey))
	} else {
		log.Warn("Stripe is not configured, USD/EUR/GBP payments are unavailable")
	}
	if cfg.Payments.RazorpayKeyID != "" && cfg.Payments.RazorpayKeySecret != "" {
		providers = append(providers, payments.NewRazorpayProvider(
			cfg.Payments.RazorpayKeyID, cfg.Payments.RazorpayKeySecret, cfg.Payments.RazorpayBaseURL, nil))
	} else {
		log.Warn("Razorpay is not configured, INR payments are unavailable")
	}

	homeCfg := home.Config{
		Visitors: cache.NewVisitorCache(cfg.StorageTTL, log),
		Tracker: navbar.MultiTracker{
			navbar.NewLogTracker(log),
			navbar.NewMetricTracker(metrics.Get().NavbarEventsTotal),
		},
		RemoteTimeout: cfg.PreferenceWriteTimeout,
		SecureCookies: cfg.SecureCookies,
	}
	if cfg.PreferenceBeaconURL != "" {
		homeCfg.Beacon = navbar.NewBeaconClient(cfg.PreferenceBeaconURL, nil)
	} else {
		homeCfg.Remote = preferencesService
	}

	handlers := &AppHandlers{
		Home:        home.NewHomeHandlers(baseHandler, homeCfg),
		Auth:        auth.NewAuthHandlers(authService, tokens.TTL(), cfg.SecureCookies, log),
		Preferences: preferences.NewPreferencesHandlers(preferencesService, cfg.SecureCookies, log),
		Payments:    payments.NewPaymentsHandlers(payments.NewRouter(log, providers...), log),
		tokens:      tokens,
		users:       authService,
	}

	if cfg.Google.Enabled() {
		google, err := auth.NewGoogleAuth(ctx, cfg.Google, authService, tokens.TTL(), cfg.SecureCookies, log)
		if err != nil {
			// Password sign-in still works without Google.
			log.Error("Google sign-in disabled", zap.Error(err))
		} else {
			handlers.Google = google
		}
	}

	return handlers, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func healthHandler(db pinger, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func setupRouter(r *gin.Engine, cfg *config.Config, h *AppHandlers, dbPool *pgxpool.Pool, log *zap.Logger) {
	r.GET("/healthz", healthHandler(dbPool, log))

	app := r.Group("/")
	app.Use(
		middleware.VisitorMiddleware(cfg.SecureCookies),
		middleware.SessionMiddleware(h.tokens, h.users, log),
	)

	// Pages and navbar fragments
	app.GET("/", h.Home.ShowHomePage)
	navGroup := app.Group("/navbar")
	{
		navGroup.POST("/currency", h.Home.SetCurrency)
		navGroup.POST("/theme", h.Home.SetTheme)
	}

	// Auth
	authGroup := app.Group("/api/auth")
	{
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/signin", h.Auth.Signin)
		authGroup.POST("/signout", h.Auth.Signout)
		authGroup.GET("/session", h.Auth.Session)
	}
	if h.Google != nil {
		googleGroup := app.Group("/auth/google")
		{
			googleGroup.GET("/login", h.Google.Login)
			googleGroup.GET("/callback", h.Google.Callback)
		}
	}

	// Signed-in API
	protected := app.Group("/api")
	protected.Use(middleware.RequireSession())
	{
		protected.POST("/user/preferences", h.Preferences.UpdatePreferences)
		protected.POST("/payments/intent", h.Payments.CreateIntent)
	}
}
