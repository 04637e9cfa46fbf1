package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/pkg/config"
)

const (
	ProviderGoogle = "google"
	googleIssuer   = "https://accounts.google.com"

	oauthStateCookie = "visiventur_oauth_state"
	oauthStateMaxAge = 10 * 60
)

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleAuth implements the OpenID Connect authorization code flow against Google.
type GoogleAuth struct {
	oauth         *oauth2.Config
	verifier      *oidc.IDTokenVerifier
	service       AuthService
	tokenTTL      time.Duration
	secureCookies bool
	logger        *zap.Logger
}

// NewGoogleAuth discovers Google's OIDC endpoints. It performs a network request.
func NewGoogleAuth(ctx context.Context, cfg config.GoogleConfig, service AuthService, tokenTTL time.Duration, secureCookies bool, logger *zap.Logger) (*GoogleAuth, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover google oidc provider: %w", err)
	}
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})
	return newGoogleAuth(oauthCfg, verifier, service, tokenTTL, secureCookies, logger), nil
}

func newGoogleAuth(oauthCfg *oauth2.Config, verifier *oidc.IDTokenVerifier, service AuthService, tokenTTL time.Duration, secureCookies bool, logger *zap.Logger) *GoogleAuth {
	return &GoogleAuth{
		oauth:         oauthCfg,
		verifier:      verifier,
		service:       service,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Login handles GET /auth/google/login.
func (g *GoogleAuth) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/auth/google", "", g.secureCookies, true)
	c.Redirect(http.StatusFound, g.oauth.AuthCodeURL(state))
}

// Callback handles GET /auth/google/callback.
func (g *GoogleAuth) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	l := g.logger.With(zap.String("method", "GoogleCallback"))

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		l.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, "", -1, "/auth/google", "", g.secureCookies, true)

	if reason := c.Query("error"); reason != "" {
		l.Info("Google sign-in cancelled", zap.String("reason", reason))
		c.Redirect(http.StatusFound, "/")
		return
	}

	identity, err := g.exchange(ctx, c.Query("code"))
	if err != nil {
		l.Warn("Google token exchange failed", zap.Error(err))
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, models.ErrBadRequest):
			status = http.StatusBadRequest
		case errors.Is(err, models.ErrForbidden):
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": "Google sign-in failed"})
		return
	}

	_, token, err := g.service.LoginWithProvider(ctx, identity)
	if err != nil {
		l.Error("Provider login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	middleware.SetAuthCookie(c, token, g.tokenTTL, g.secureCookies)
	c.Redirect(http.StatusFound, "/")
}

func (g *GoogleAuth) exchange(ctx context.Context, code string) (ProviderIdentity, error) {
	if code == "" {
		return ProviderIdentity{}, fmt.Errorf("%w: missing authorization code", models.ErrBadRequest)
	}
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return ProviderIdentity{}, fmt.Errorf("code exchange: %w", err)
	}
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return ProviderIdentity{}, errors.New("token response has no id_token")
	}
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return ProviderIdentity{}, fmt.Errorf("verify id_token: %w", err)
	}

	var claims googleClaims
	if err = idToken.Claims(&claims); err != nil {
		return ProviderIdentity{}, fmt.Errorf("decode id_token claims: %w", err)
	}
	if !claims.EmailVerified {
		return ProviderIdentity{}, fmt.Errorf("%w: google email not verified", models.ErrForbidden)
	}

	return ProviderIdentity{
		Provider: ProviderGoogle,
		Subject:  idToken.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
	}, nil
}
