package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

var _ AuthRepo = (*PostgresAuthRepo)(nil)

const uniqueViolation = "23505"

var userColumns = []string{
	"id", "email", "name", "image", "password_hash", "is_premium",
	"preferred_currency", "unread_notifications", "created_at", "updated_at",
}

type AuthRepo interface {
	// CreateUser inserts a new account. passwordHash is nil for OAuth-only users.
	CreateUser(ctx context.Context, email string, name, image, passwordHash *string) (*models.UserAuth, error)
	GetUserByEmail(ctx context.Context, email string) (*models.UserAuth, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.UserAuth, error)

	// provider specific methods for user management
	CreateUserProvider(ctx context.Context, userID uuid.UUID, provider, providerUserID string) error
	GetUserIDByProvider(ctx context.Context, provider, providerUserID string) (uuid.UUID, error)
}

type PostgresAuthRepo struct {
	logger *zap.Logger
	db     database.DBTX
	psql   sq.StatementBuilderType
}

func NewPostgresAuthRepo(db database.DBTX, logger *zap.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func startSpan(ctx context.Context, name, operation string) (context.Context, trace.Span) {
	return otel.Tracer("AuthRepo").Start(ctx, name, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", operation),
	))
}

// observe records the query duration and error count, and marks the span.
func observe(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("operation", operation))
	m.DBQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		m.DBQueryErrorsTotal.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database error")
		return
	}
	span.SetStatus(codes.Ok, "")
}

func scanUser(row pgx.Row) (*models.UserAuth, error) {
	var user models.UserAuth
	var currency string
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Image, &user.PasswordHash, &user.IsPremium,
		&currency, &user.UnreadNotifications, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.PreferredCurrency = models.Currency(currency)
	return &user, nil
}

// CreateUser implements auth.AuthRepo.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, email string, name, image, passwordHash *string) (*models.UserAuth, error) {
	ctx, span := startSpan(ctx, "PostgresAuthRepo.CreateUser", "INSERT")
	defer span.End()

	query, args, err := r.psql.Insert("users").
		Columns("email", "name", "image", "password_hash").
		Values(email, name, image, passwordHash).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert user query: %w", err)
	}

	start := time.Now()
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	observe(ctx, span, "create_user", start, err)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("email %s already registered: %w", email, models.ErrConflict)
		}
		r.logger.Error("Error inserting user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("database error creating user: %w", err)
	}

	span.SetAttributes(attribute.String("db.user_id", user.ID.String()))
	return user, nil
}

// GetUserByEmail implements auth.AuthRepo.
func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	ctx, span := startSpan(ctx, "PostgresAuthRepo.GetUserByEmail", "SELECT")
	defer span.End()

	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user by email query: %w", err)
	}

	start := time.Now()
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	observe(ctx, span, "get_user_by_email", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, models.ErrNotFound)
		}
		r.logger.Error("Error fetching user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return user, nil
}

// GetUserByID implements auth.AuthRepo.
func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.UserAuth, error) {
	ctx, span := startSpan(ctx, "PostgresAuthRepo.GetUserByID", "SELECT")
	defer span.End()

	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user by id query: %w", err)
	}

	start := time.Now()
	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	observe(ctx, span, "get_user_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with ID %s not found: %w", userID, models.ErrNotFound)
		}
		r.logger.Error("Error fetching user by ID", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("database error fetching user by ID: %w", err)
	}
	return user, nil
}

// CreateUserProvider links an external identity to a user. Re-linking the same identity is a no-op.
func (r *PostgresAuthRepo) CreateUserProvider(ctx context.Context, userID uuid.UUID, provider, providerUserID string) error {
	ctx, span := startSpan(ctx, "PostgresAuthRepo.CreateUserProvider", "INSERT")
	defer span.End()

	query, args, err := r.psql.Insert("user_providers").
		Columns("user_id", "provider", "provider_user_id").
		Values(userID, provider, providerUserID).
		Suffix("ON CONFLICT (provider, provider_user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert provider query: %w", err)
	}

	start := time.Now()
	_, err = r.db.Exec(ctx, query, args...)
	observe(ctx, span, "create_user_provider", start, err)
	if err != nil {
		r.logger.Error("Error linking provider",
			zap.String("userID", userID.String()),
			zap.String("provider", provider),
			zap.Error(err))
		return fmt.Errorf("database error linking provider: %w", err)
	}
	return nil
}

// GetUserIDByProvider implements auth.AuthRepo.
func (r *PostgresAuthRepo) GetUserIDByProvider(ctx context.Context, provider, providerUserID string) (uuid.UUID, error) {
	ctx, span := startSpan(ctx, "PostgresAuthRepo.GetUserIDByProvider", "SELECT")
	defer span.End()

	query, args, err := r.psql.Select("user_id").
		From("user_providers").
		Where(sq.Eq{"provider": provider, "provider_user_id": providerUserID}).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build provider lookup query: %w", err)
	}

	var userID uuid.UUID
	start := time.Now()
	err = r.db.QueryRow(ctx, query, args...).Scan(&userID)
	observe(ctx, span, "get_user_id_by_provider", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("no %s identity %s: %w", provider, providerUserID, models.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("database error looking up provider: %w", err)
	}
	return userID, nil
}
