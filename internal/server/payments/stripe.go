package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeIntentCreator implements IntentCreator against the Stripe API.
type StripeIntentCreator struct {
	api *client.API
}

// NewStripeIntentCreator builds a creator bound to the given secret key.
func NewStripeIntentCreator(secretKey string) *StripeIntentCreator {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeIntentCreator{api: api}
}

func (c *StripeIntentCreator) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("payment provider: %w", err)
	}
	return pi.ClientSecret, nil
}
