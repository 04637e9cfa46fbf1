package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/observability/metrics"
)

// Define typed context keys
type contextKey string

const (
	UserContextKey contextKey = "user"
	VisitorIDKey   contextKey = "visitorID"
)

const (
	AuthCookieName    = "auth_token"
	VisitorCookieName = "visiventur_vid"

	visitorMaxAge = 365 * 24 * 60 * 60
)

// UserLoader resolves the account behind a validated token.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.UserAuth, error)
}

// OTELGinMiddleware returns the OpenTelemetry middleware for Gin
func OTELGinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// CORSMiddleware handles CORS headers for the configured origin.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && origin == allowedOrigin {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Current-URL, HX-Trigger")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// htmx from unpkg, checkout widgets from the payment gateways, Google avatars
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' https://unpkg.com https://js.stripe.com https://checkout.razorpay.com; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: https://lh3.googleusercontent.com; " +
			"frame-src https://js.stripe.com https://api.razorpay.com; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

// MetricsMiddleware records request counts and latencies by route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m := metrics.Get()
		ctx := c.Request.Context()
		m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
			attribute.String("status", strconv.Itoa(c.Writer.Status())),
		))
		m.HTTPRequestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
		))
	}
}

// SessionMiddleware resolves the signed-in user, if any, and stores its snapshot on the context.
// Invalid or missing tokens leave the request anonymous. users may be nil, in which case
// the snapshot is built from the token claims alone.
func SessionMiddleware(tokens *JWTService, users UserLoader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Ignoring invalid session token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		if users == nil {
			c.Set(string(UserContextKey), claims.SessionUser())
			c.Next()
			return
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			logger.Warn("Session token carries a malformed user id", zap.String("user_id", claims.UserID))
			c.Next()
			return
		}
		user, err := users.GetUserByID(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				logger.Error("Failed to load session user", zap.String("user_id", claims.UserID), zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(string(UserContextKey), user.SessionUser())
		c.Next()
	}
}

// RequireSession rejects anonymous requests with a JSON 401.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSessionUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// tokenFromRequest checks the cookie first, then the Authorization header, then the token query parameter.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Query("token")
}

// GetSessionUser extracts the signed-in user from the Gin context.
func GetSessionUser(c *gin.Context) *models.SessionUser {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	su, ok := user.(*models.SessionUser)
	if !ok {
		return nil
	}
	return su
}

// VisitorMiddleware assigns every browser a stable anonymous id used to key its client storage.
func VisitorMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		vid, err := c.Cookie(VisitorCookieName)
		if err != nil || uuid.Validate(vid) != nil {
			vid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookieName, vid, visitorMaxAge, "/", "", secure, true)
		}
		c.Set(string(VisitorIDKey), vid)
		c.Next()
	}
}

// GetVisitorID returns the visitor id set by VisitorMiddleware, or "".
func GetVisitorID(c *gin.Context) string {
	return c.GetString(string(VisitorIDKey))
}

// SetAuthCookie stores a session token in an HTTP-only cookie.
func SetAuthCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearAuthCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", secure, true)
}
