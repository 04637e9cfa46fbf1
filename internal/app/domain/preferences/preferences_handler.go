package preferences

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/models"
)

const (
	CurrencyCookieName = "visiventur_preferred_currency"
	currencyMaxAge     = 60 * 60 * 24 * 365
)

type PreferencesHandlers struct {
	service       PreferencesService
	logger        *zap.Logger
	secureCookies bool
}

func NewPreferencesHandlers(service PreferencesService, secureCookies bool, logger *zap.Logger) *PreferencesHandlers {
	return &PreferencesHandlers{service: service, logger: logger, secureCookies: secureCookies}
}

// UpdatePreferences handles POST /api/user/preferences.
func (h *PreferencesHandlers) UpdatePreferences(c *gin.Context) {
	user := middleware.GetSessionUser(c)
	if user == nil || user.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payload any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	raw, _ := payload.(map[string]any)
	code, _ := raw["currency"].(string)
	currency, err := models.ParseCurrency(code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
		return
	}

	SetCurrencyCookie(c, currency, h.secureCookies)

	if err = h.service.WriteCurrency(c.Request.Context(), user.ID, currency); err != nil {
		h.logger.Warn("Failed to persist preferred currency",
			zap.String("userID", user.ID),
			zap.String("currency", string(currency)),
			zap.Error(err))
	}

	c.Status(http.StatusNoContent)
}

// SetCurrencyCookie writes the one-year preference cookie read back by CurrencyFromRequest.
func SetCurrencyCookie(c *gin.Context, currency models.Currency, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CurrencyCookieName, string(currency), currencyMaxAge, "/", "", secure, true)
}

// CurrencyFromRequest returns the cookie currency. ok is false when absent or unsupported.
func CurrencyFromRequest(c *gin.Context) (models.Currency, bool) {
	v, err := c.Cookie(CurrencyCookieName)
	if err != nil {
		return "", false
	}
	currency, err := models.ParseCurrency(v)
	if err != nil {
		return "", false
	}
	return currency, true
}
