package preferences

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/navbar"
	"github.com/FACorreiaa/visiventur/internal/app/observability/metrics"
)

var (
	_ PreferencesService      = (*PreferencesServiceImpl)(nil)
	_ navbar.PreferenceWriter = (*PreferencesServiceImpl)(nil)
)

type PreferencesService interface {
	WriteCurrency(ctx context.Context, userID string, currency models.Currency) error
}

type PreferencesServiceImpl struct {
	logger *zap.Logger
	repo   PreferencesRepo
}

func NewPreferencesService(repo PreferencesRepo, logger *zap.Logger) *PreferencesServiceImpl {
	return &PreferencesServiceImpl{logger: logger, repo: repo}
}

// WriteCurrency persists a signed-in user's currency. It is the remote half of the navbar's
// preference effect and the durable half of the preferences endpoint.
func (s *PreferencesServiceImpl) WriteCurrency(ctx context.Context, userID string, currency models.Currency) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.Get().PreferenceWritesTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("currency", string(currency)),
			attribute.String("outcome", outcome),
		))
	}()

	if !currency.Valid() {
		return fmt.Errorf("%q: %w", currency, models.ErrInvalidCurrency)
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: malformed user id %q", models.ErrValidation, userID)
	}

	if err = s.repo.UpdatePreferredCurrency(ctx, id, currency); err != nil {
		return err
	}
	s.logger.Debug("Preferred currency saved", zap.String("userID", userID), zap.String("currency", string(currency)))
	return nil
}
