// Package stripe implements the card payment gateway on Stripe PaymentIntents.
package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"

	"goonj/internal/domain"
)

// intentAPI is the subset of the Stripe client used by Gateway.
type intentAPI interface {
	Create(ctx context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error)
	Retrieve(ctx context.Context, id string, params *stripe.PaymentIntentRetrieveParams) (*stripe.PaymentIntent, error)
}

// Gateway is a domain.PaymentGateway backed by Stripe.
type Gateway struct {
	intents intentAPI
}

// NewGateway returns a Gateway authenticated with secretKey.
func NewGateway(secretKey string) *Gateway {
	sc := stripe.NewClient(secretKey)
	return &Gateway{intents: sc.V1PaymentIntents}
}

func (g *Gateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	pi, err := g.intents.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return toIntent(pi), nil
}

func (g *Gateway) GetIntent(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	pi, err := g.intents.Retrieve(ctx, id, &stripe.PaymentIntentRetrieveParams{})
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.Code == stripe.ErrorCodeResourceMissing {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stripe retrieve payment intent: %w", err)
	}
	return toIntent(pi), nil
}

func toIntent(pi *stripe.PaymentIntent) *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       domain.PaymentIntentStatus(pi.Status),
	}
}
