package domain

import (
	"context"
	"strings"
	"time"
)

// PaymentStatus is derived once, at write time, from the presence of a transaction ID.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// RegistrationStatus is the workflow status of a registration. New records are always pending.
type RegistrationStatus string

const RegistrationStatusPending RegistrationStatus = "pending"

// PaymentMethod selects the payment sub-flow.
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// DerivePaymentStatus returns completed when transactionID is non-blank and pending otherwise.
func DerivePaymentStatus(transactionID string) PaymentStatus {
	if strings.TrimSpace(transactionID) != "" {
		return PaymentStatusCompleted
	}
	return PaymentStatusPending
}

// RegistrationForm holds the personal-detail fields typed by the registrant.
type RegistrationForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
	Course  string `json:"course"`
	Year    string `json:"year"`
}

// PaymentInfo carries the payment sub-form. For UPI the transaction ID is the pasted
// reference; for card payments it is the confirmed payment intent ID.
type PaymentInfo struct {
	Method        PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
}

// RegisteredEvent is the snapshot of an offering stored on a registration. It is copied at
// submission time so later catalog edits never change history.
type RegisteredEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Type  string `json:"type"`
}

// Registration is the durable record of a completed registration.
// swagger:model Registration
type Registration struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	College        string             `json:"college"`
	Course         string             `json:"course"`
	Year           string             `json:"year"`
	Events         []RegisteredEvent  `json:"events"`
	TotalAmount    int64              `json:"total_amount"`
	PaymentMethod  PaymentMethod      `json:"payment_method"`
	TransactionID  string             `json:"transaction_id,omitempty"`
	PaymentStatus  PaymentStatus      `json:"payment_status"`
	Status         RegistrationStatus `json:"status"`
	IdempotencyKey string             `json:"-"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	SubmittedAt    time.Time          `json:"submitted_at"`
}

// NewRegistration builds the record written by the submission path. ID and timestamps are
// assigned by the store on create.
func NewRegistration(form RegistrationForm, selection Selection, payment PaymentInfo, idempotencyKey string) *Registration {
	txID := strings.TrimSpace(payment.TransactionID)
	method := payment.Method
	if method == "" {
		method = PaymentMethodUPI
	}
	return &Registration{
		Name:           strings.TrimSpace(form.Name),
		Email:          strings.TrimSpace(form.Email),
		Phone:          strings.TrimSpace(form.Phone),
		College:        strings.TrimSpace(form.College),
		Course:         strings.TrimSpace(form.Course),
		Year:           strings.TrimSpace(form.Year),
		Events:         selection.Snapshot(),
		TotalAmount:    selection.Total(),
		PaymentMethod:  method,
		TransactionID:  txID,
		PaymentStatus:  DerivePaymentStatus(txID),
		Status:         RegistrationStatusPending,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}

// CurrentPaymentStatus re-derives the payment status from the transaction ID instead of
// trusting the stored flag.
func (r *Registration) CurrentPaymentStatus() PaymentStatus {
	return DerivePaymentStatus(r.TransactionID)
}

// EventNames returns the names of the registered events in stored order.
func (r *Registration) EventNames() []string {
	names := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		names = append(names, e.Name)
	}
	return names
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create writes reg as a single document and fills in ID and the store-assigned timestamps.
	// Returns ErrDuplicateSubmission when reg.IdempotencyKey was already used.
	Create(ctx context.Context, reg *Registration) error
	GetByIdempotencyKey(ctx context.Context, key string) (*Registration, error)
	// ListAll returns every registration ordered by created_at descending.
	ListAll(ctx context.Context) ([]*Registration, error)
	// Delete removes one registration. Returns ErrNotFound when no record has that id.
	Delete(ctx context.Context, id string) error
}

// SubmissionInput is everything the registrant sends when submitting the form.
type SubmissionInput struct {
	Form           RegistrationForm
	EventIDs       []string
	Payment        PaymentInfo
	IdempotencyKey string
}

// SubmissionResult is returned once the registration is durable. Created is false when an
// earlier submission with the same idempotency key is returned instead.
type SubmissionResult struct {
	RegistrationID string        `json:"registration_id"`
	Registration   *Registration `json:"registration"`
	Created        bool          `json:"created"`
}

// Quote is the priced view of a selection.
type Quote struct {
	Events []EventOffering `json:"events"`
	Total  int64           `json:"total"`
}

// RegistrationService defines the registrant-facing submission operations.
type RegistrationService interface {
	Quote(ctx context.Context, eventIDs []string) (*Quote, error)
	Submit(ctx context.Context, in SubmissionInput) (*SubmissionResult, error)
}

// IdempotencyGuard reserves client idempotency keys so concurrent duplicate submissions collapse.
type IdempotencyGuard interface {
	// Reserve returns true when the key was free and is now held by the caller.
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
