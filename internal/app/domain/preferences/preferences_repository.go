package preferences

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/observability/metrics"
	database "github.com/FACorreiaa/visiventur/internal/db"
)

var _ PreferencesRepo = (*PostgresPreferencesRepo)(nil)

type PreferencesRepo interface {
	UpdatePreferredCurrency(ctx context.Context, userID uuid.UUID, currency models.Currency) error
}

type PostgresPreferencesRepo struct {
	logger *zap.Logger
	db     database.DBTX
	psql   sq.StatementBuilderType
}

func NewPostgresPreferencesRepo(db database.DBTX, logger *zap.Logger) *PostgresPreferencesRepo {
	return &PostgresPreferencesRepo{
		logger: logger,
		db:     db,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// UpdatePreferredCurrency stores currency on the user row. A missing user yields models.ErrNotFound.
func (r *PostgresPreferencesRepo) UpdatePreferredCurrency(ctx context.Context, userID uuid.UUID, currency models.Currency) error {
	ctx, span := otel.Tracer("PreferencesRepo").Start(ctx, "PostgresPreferencesRepo.UpdatePreferredCurrency", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("currency", string(currency)),
	))
	defer span.End()

	query, args, err := r.psql.Update("users").
		Set("preferred_currency", string(currency)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update currency query: %w", err)
	}

	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("operation", "update_preferred_currency"))
	start := time.Now()
	tag, err := r.db.Exec(ctx, query, args...)
	m.DBQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DBQueryErrorsTotal.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database error")
		r.logger.Error("Error updating preferred currency", zap.String("userID", userID.String()), zap.Error(err))
		return fmt.Errorf("database error updating preferred currency: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "User not found")
		return fmt.Errorf("user with ID %s not found: %w", userID, models.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
