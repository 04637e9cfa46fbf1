package middleware

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/pkg/config"
)

// Claims represents the JWT claims of a signed-in user.
type Claims struct {
	UserID              string          `json:"user_id"`
	Email               string          `json:"email,omitempty"`
	Name                string          `json:"name,omitempty"`
	IsPremium           bool            `json:"is_premium"`
	PreferredCurrency   models.Currency `json:"preferred_currency,omitempty"`
	UnreadNotifications int             `json:"unread_notifications"`
	jwt.RegisteredClaims
}

// SessionUser builds the navbar snapshot straight from the token.
func (c *Claims) SessionUser() *models.SessionUser {
	su := &models.SessionUser{
		ID:                  c.UserID,
		Name:                c.Name,
		Email:               c.Email,
		IsPremium:           c.IsPremium,
		PreferredCurrency:   c.PreferredCurrency,
		UnreadNotifications: c.UnreadNotifications,
	}
	if !su.PreferredCurrency.Valid() {
		su.PreferredCurrency = models.DefaultCurrency
	}
	return su
}

type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// TTL is the lifetime of issued tokens, also used as the cookie max age.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken signs an HS256 token for user.
func (s *JWTService) GenerateToken(user *models.UserAuth) (string, error) {
	if user == nil {
		return "", fmt.Errorf("failed to generate token: %w", models.ErrUnauthenticated)
	}
	su := user.SessionUser()
	now := s.now()
	claims := Claims{
		UserID:              su.ID,
		Email:               su.Email,
		Name:                su.Name,
		IsPremium:           su.IsPremium,
		PreferredCurrency:   su.PreferredCurrency,
		UnreadNotifications: su.UnreadNotifications,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   su.ID,
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a token string.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUnauthenticated, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthenticated)
	}
	return claims, nil
}
