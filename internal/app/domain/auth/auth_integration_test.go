//go:build integration

package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/domain/preferences"
	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/models"
	database "github.com/FACorreiaa/visiventur/internal/db"
	"github.com/FACorreiaa/visiventur/internal/pkg/config"
)

// Run with: TEST_DATABASE_URL=postgresql://... go test -tags integration ./internal/app/domain/auth/
func TestAuthFlowAgainstPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	logger := zap.NewNop()

	require.NoError(t, database.RunMigrations(url, logger))
	pool, err := database.Init(url, 4, 1, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.True(t, database.WaitForDB(ctx, pool, logger))

	tokens := middleware.NewJWTService(config.JWTConfig{Secret: "integration", TTL: time.Hour, Issuer: "visiventur"})
	svc := NewAuthService(NewPostgresAuthRepo(pool, logger), tokens, logger)
	email := "it-" + uuid.NewString() + "@example.com"
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM users WHERE email = $1", email)
	})

	created, err := svc.Signup(ctx, email, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyUSD, created.PreferredCurrency)

	_, err = svc.Signup(ctx, email, "other")
	assert.ErrorIs(t, err, models.ErrConflict)

	_, _, err = svc.Login(ctx, email, "wrong")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	user, token, err := svc.Login(ctx, email, "s3cret")
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)

	prefs := preferences.NewPreferencesService(preferences.NewPostgresPreferencesRepo(pool, logger), logger)
	require.NoError(t, prefs.WriteCurrency(ctx, user.ID.String(), models.CurrencyINR))

	reloaded, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyINR, reloaded.PreferredCurrency)

	provider := ProviderIdentity{Provider: ProviderGoogle, Subject: "sub-" + uuid.NewString(), Email: email, Name: "Ada"}
	linked, _, err := svc.LoginWithProvider(ctx, provider)
	require.NoError(t, err)
	assert.Equal(t, user.ID, linked.ID)
}
