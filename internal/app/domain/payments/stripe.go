package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

var _ Provider = (*StripeProvider)(nil)

// StripeProvider creates PaymentIntents for the Stripe Payment Element.
type StripeProvider struct {
	apiKey string
}

// NewStripeProvider sets the package-level Stripe key used by the stripe-go resource clients.
func NewStripeProvider(apiKey string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{apiKey: apiKey}
}

func (s *StripeProvider) Gateway() models.PaymentGateway {
	return models.GatewayStripe
}

func (s *StripeProvider) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(string(req.Currency))),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.UserID != "" {
		params.AddMetadata("user_id", req.UserID)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		Gateway:      models.GatewayStripe,
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
