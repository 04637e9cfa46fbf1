package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(user *models.UserAuth) (string, error)
}

// ProviderIdentity is the verified profile returned by an external identity provider.
type ProviderIdentity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
	Picture  string
}

// AuthService defines the business logic contract.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*models.UserAuth, error)
	Login(ctx context.Context, email, password string) (*models.UserAuth, string, error)
	LoginWithProvider(ctx context.Context, identity ProviderIdentity) (*models.UserAuth, string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.UserAuth, error)
}

// AuthServiceImpl provides the implementation for AuthService.
type AuthServiceImpl struct {
	logger *zap.Logger
	repo   AuthRepo
	tokens TokenIssuer
	cost   int
}

// NewAuthService creates a new authentication service instance.
func NewAuthService(repo AuthRepo, tokens TokenIssuer, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{logger: logger, repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Signup creates a password account. The email is trimmed; the password is taken as is.
func (s *AuthServiceImpl) Signup(ctx context.Context, email, password string) (*models.UserAuth, error) {
	email = strings.TrimSpace(email)
	l := s.logger.With(zap.String("method", "Signup"), zap.String("email", email))

	if email == "" || password == "" {
		return nil, models.ErrMissingCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, models.ErrPasswordTooLong
	}
	if err != nil {
		l.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashed)

	user, err := s.repo.CreateUser(ctx, email, nil, nil, &hash)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			l.Info("Signup for existing email")
		}
		return nil, err
	}

	l.Info("User registered", zap.String("userID", user.ID.String()))
	return user, nil
}

// Login validates credentials and issues a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.UserAuth, string, error) {
	email = strings.TrimSpace(email)
	l := s.logger.With(zap.String("method", "Login"), zap.String("email", email))

	if email == "" || password == "" {
		return nil, "", models.ErrMissingCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			l.Warn("Login for unknown email")
			// Don't reveal if user exists or password is wrong
			return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
		}
		return nil, "", err
	}

	if user.PasswordHash == nil {
		l.Warn("Password login for provider-only account", zap.String("userID", user.ID.String()))
		return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		l.Warn("Password comparison failed", zap.String("userID", user.ID.String()))
		return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		l.Error("Failed to generate token", zap.String("userID", user.ID.String()), zap.Error(err))
		return nil, "", fmt.Errorf("app error generating token: %w", err)
	}

	l.Info("Login successful", zap.String("userID", user.ID.String()))
	return user, token, nil
}

// LoginWithProvider signs in an external identity, linking it to an existing account with the
// same email or creating a new account on first use.
func (s *AuthServiceImpl) LoginWithProvider(ctx context.Context, identity ProviderIdentity) (*models.UserAuth, string, error) {
	l := s.logger.With(zap.String("method", "LoginWithProvider"), zap.String("provider", identity.Provider))

	if identity.Subject == "" || strings.TrimSpace(identity.Email) == "" {
		return nil, "", fmt.Errorf("%w: provider identity is incomplete", models.ErrValidation)
	}

	user, err := s.resolveProviderUser(ctx, identity)
	if err != nil {
		l.Error("Failed to resolve provider user", zap.Error(err))
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		l.Error("Failed to generate token", zap.String("userID", user.ID.String()), zap.Error(err))
		return nil, "", fmt.Errorf("app error generating token: %w", err)
	}

	l.Info("Provider login successful", zap.String("userID", user.ID.String()))
	return user, token, nil
}

func (s *AuthServiceImpl) resolveProviderUser(ctx context.Context, identity ProviderIdentity) (*models.UserAuth, error) {
	userID, err := s.repo.GetUserIDByProvider(ctx, identity.Provider, identity.Subject)
	if err == nil {
		return s.repo.GetUserByID(ctx, userID)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	email := strings.TrimSpace(identity.Email)
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		user, err = s.repo.CreateUser(ctx, email, optional(identity.Name), optional(identity.Picture), nil)
	}
	if err != nil {
		return nil, err
	}

	if err = s.repo.CreateUserProvider(ctx, user.ID, identity.Provider, identity.Subject); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID loads an account, used to refresh the session snapshot.
func (s *AuthServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.UserAuth, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
