package domain

import "context"

// PaymentIntentStatus mirrors the gateway's intent lifecycle. Only succeeded counts as paid.
type PaymentIntentStatus string

const (
	PaymentIntentSucceeded             PaymentIntentStatus = "succeeded"
	PaymentIntentProcessing            PaymentIntentStatus = "processing"
	PaymentIntentRequiresPaymentMethod PaymentIntentStatus = "requires_payment_method"
	PaymentIntentRequiresConfirmation  PaymentIntentStatus = "requires_confirmation"
	PaymentIntentRequiresAction        PaymentIntentStatus = "requires_action"
	PaymentIntentCanceled              PaymentIntentStatus = "canceled"
)

// PaymentIntent is a gateway-issued handle for a charge. Amount is in the gateway minor unit.
// swagger:model PaymentIntent
type PaymentIntent struct {
	ID           string              `json:"payment_intent_id"`
	ClientSecret string              `json:"client_secret,omitempty"`
	Amount       int64               `json:"amount"`
	Currency     string              `json:"currency"`
	Status       PaymentIntentStatus `json:"status"`
}

// PaymentGateway is the card payment provider port.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// PaymentIntentRequest asks for an intent covering the given events. Amount is the total the
// client believes it owes, in whole currency units; zero means "not declared".
type PaymentIntentRequest struct {
	EventIDs []string `json:"event_ids"`
	Amount   int64    `json:"amount"`
}

// PaymentService is the card payment bridge used by the registration form.
type PaymentService interface {
	CreateIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error)
	// VerifyIntent checks that the intent succeeded for exactly amount whole currency units.
	VerifyIntent(ctx context.Context, intentID string, amount int64) error
}
