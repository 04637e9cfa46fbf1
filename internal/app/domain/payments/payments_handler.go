package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/middleware"
	"github.com/FACorreiaa/visiventur/internal/app/models"
)

type IntentPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentsHandlers struct {
	router *Router
	logger *zap.Logger
}

func NewPaymentsHandlers(router *Router, logger *zap.Logger) *PaymentsHandlers {
	return &PaymentsHandlers{router: router, logger: logger}
}

// CreateIntent handles POST /api/payments/intent.
func (h *PaymentsHandlers) CreateIntent(c *gin.Context) {
	user := middleware.GetSessionUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payload IntentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	intent, err := h.router.CreateIntent(c.Request.Context(), IntentRequest{
		Amount:   payload.Amount,
		Currency: models.Currency(payload.Currency),
		UserID:   user.ID,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, intent)
	case errors.Is(err, models.ErrInvalidCurrency):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency"})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive integer"})
	case errors.Is(err, models.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
	}
}
