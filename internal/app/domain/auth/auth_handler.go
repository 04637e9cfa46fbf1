package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/observability/metrics"
)

const (
	msgCredentialsRequired = "Email and password are required."
	msgPasswordTooLong     = "Password must be at most 72 bytes."
	msgDuplicateEmail      = "A user with this email already exists."
	msgInvalidCredentials  = "Invalid email or password."
	msgInternal            = "Internal server error."
)

type CredentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AuthHandlers struct {
	authService   AuthService
	logger        *zap.Logger
	tokenTTL      time.Duration
	secureCookies bool
}

func NewAuthHandlers(authService AuthService, tokenTTL time.Duration, secureCookies bool, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService:   authService,
		logger:        logger,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandlers) count(ctx context.Context, endpoint, outcome string) {
	metrics.Get().AuthRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("outcome", outcome),
	))
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandlers) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.count(ctx, "signup", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCredentialsRequired})
		return
	}

	user, err := h.authService.Signup(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrPasswordTooLong):
		h.count(ctx, "signup", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgPasswordTooLong})
		return
	case errors.Is(err, models.ErrValidation):
		h.count(ctx, "signup", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCredentialsRequired})
		return
	case errors.Is(err, models.ErrConflict):
		h.count(ctx, "signup", "conflict")
		c.JSON(http.StatusConflict, gin.H{"error": msgDuplicateEmail})
		return
	default:
		h.logger.Error("Signup failed", zap.Error(err))
		h.count(ctx, "signup", "error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	h.count(ctx, "signup", "created")
	c.JSON(http.StatusCreated, user.Public())
}

// Signin handles POST /api/auth/signin for JSON clients and HTMX forms.
func (h *AuthHandlers) Signin(c *gin.Context) {
	ctx := c.Request.Context()
	var req CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		h.count(ctx, "signin", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCredentialsRequired})
		return
	}

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		h.count(ctx, "signin", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCredentialsRequired})
		return
	case errors.Is(err, models.ErrUnauthenticated):
		h.count(ctx, "signin", "unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
		return
	default:
		h.logger.Error("Signin failed", zap.Error(err))
		h.count(ctx, "signin", "error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	middleware.SetAuthCookie(c, token, h.tokenTTL, h.secureCookies)
	h.count(ctx, "signin", "ok")

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", "/")
	}
	c.JSON(http.StatusOK, models.Session{User: user.SessionUser()})
}

// Signout handles POST /api/auth/signout.
func (h *AuthHandlers) Signout(c *gin.Context) {
	middleware.ClearAuthCookie(c, h.secureCookies)
	h.count(c.Request.Context(), "signout", "ok")
	c.Header("HX-Redirect", "/")
	c.Status(http.StatusNoContent)
}

// Session handles GET /api/auth/session.
func (h *AuthHandlers) Session(c *gin.Context) {
	c.JSON(http.StatusOK, models.Session{User: middleware.GetSessionUser(c)})
}
