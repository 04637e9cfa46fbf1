package payments

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/observability/metrics"
)

// IntentRequest asks a gateway to prepare a charge. Amount is in the currency's minor unit.
type IntentRequest struct {
	Amount   int64
	Currency models.Currency
	UserID   string
}

// Intent is what the browser needs to complete checkout with the chosen gateway.
type Intent struct {
	Gateway      models.PaymentGateway `json:"gateway"`
	ID           string                `json:"id"`
	ClientSecret string                `json:"clientSecret,omitempty"`
	PublicKey    string                `json:"publicKey,omitempty"`
}

// Provider is a payment gateway integration.
type Provider interface {
	Gateway() models.PaymentGateway
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

// Router picks the gateway for a currency: Razorpay for INR, Stripe for the rest.
type Router struct {
	providers map[models.PaymentGateway]Provider
	logger    *zap.Logger
}

// NewRouter registers providers by gateway. A gateway without a provider answers with
// models.ErrGatewayUnavailable.
func NewRouter(logger *zap.Logger, providers ...Provider) *Router {
	r := &Router{providers: make(map[models.PaymentGateway]Provider), logger: logger}
	for _, p := range providers {
		r.providers[p.Gateway()] = p
	}
	return r
}

// Provider returns the gateway integration for currency.
func (r *Router) Provider(currency models.Currency) (Provider, error) {
	if !currency.Valid() {
		return nil, fmt.Errorf("%q: %w", currency, models.ErrInvalidCurrency)
	}
	p, ok := r.providers[currency.Gateway()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", currency.Gateway(), models.ErrGatewayUnavailable)
	}
	return p, nil
}

func (r *Router) CreateIntent(ctx context.Context, req IntentRequest) (intent *Intent, err error) {
	gateway := req.Currency.Gateway()
	l := r.logger.With(
		zap.String("method", "CreateIntent"),
		zap.String("currency", string(req.Currency)),
		zap.String("gateway", string(gateway)),
	)
	defer func() {
		outcome := "ok"
		switch {
		case errors.Is(err, models.ErrValidation):
			outcome = "invalid"
		case errors.Is(err, models.ErrGatewayUnavailable):
			outcome = "unavailable"
		case err != nil:
			outcome = "error"
		}
		metrics.Get().PaymentIntentsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("gateway", string(gateway)),
			attribute.String("outcome", outcome),
		))
	}()

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	p, err := r.Provider(req.Currency)
	if err != nil {
		return nil, err
	}

	intent, err = p.CreateIntent(ctx, req)
	if err != nil {
		l.Error("Gateway rejected payment intent", zap.Int64("amount", req.Amount), zap.Error(err))
		return nil, err
	}
	l.Info("Payment intent created", zap.String("intent_id", intent.ID))
	return intent, nil
}
