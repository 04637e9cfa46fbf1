package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type PostgresConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5454"`
	DB       string `env:"DB" envDefault:"visiventur"`
	Username string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD,required"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"MAX_CONNS" envDefault:"30"`
	MinConns int32  `env:"MIN_CONNS" envDefault:"5"`
}

type RepositoriesConfig struct {
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
}

type JWTConfig struct {
	Secret string        `env:"SECRET" envDefault:"change-me-in-production"`
	TTL    time.Duration `env:"TTL" envDefault:"168h"`
	Issuer string        `env:"ISSUER" envDefault:"visiventur"`
}

type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8091/auth/google/callback"`
}

// Enabled reports whether Google sign-in routes should be mounted.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type PaymentsConfig struct {
	StripeSecretKey   string `env:"STRIPE_SECRET_KEY"`
	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com"`
}

type ObservabilityConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"visiventur"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9092"`
	PprofAddr   string `env:"PPROF_ADDR" envDefault:":6060"`
	OTLPEnabled bool   `env:"OTLP_ENABLED" envDefault:"false"`
}

type Config struct {
	Repositories  RepositoriesConfig
	JWT           JWTConfig    `envPrefix:"JWT_"`
	Google        GoogleConfig `envPrefix:"GOOGLE_"`
	Payments      PaymentsConfig
	Observability ObservabilityConfig
	ServerPort    string        `env:"SERVER_PORT" envDefault:"8091"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:8091"`
	StorageTTL    time.Duration `env:"STORAGE_TTL" envDefault:"720h"`
	// PreferenceWriteTimeout bounds the background save of a signed-in user's currency.
	PreferenceWriteTimeout time.Duration `env:"PREFERENCE_WRITE_TIMEOUT" envDefault:"3s"`
	// PreferenceBeaconURL sends that save over HTTP instead of writing the database in-process.
	PreferenceBeaconURL string `env:"PREFERENCE_BEACON_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWT.TTL)
	}
	return cfg, nil
}
