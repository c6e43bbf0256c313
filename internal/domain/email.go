package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConfirmationEvent is one line of the confirmation email.
type ConfirmationEvent struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ConfirmationRequest is the payload of a registration confirmation. It is the body of the
// confirmation queue message and the data handed to the email template.
type ConfirmationRequest struct {
	Email          string              `json:"email"`
	Name           string              `json:"name"`
	RegistrationID string              `json:"registrationId"`
	Events         []ConfirmationEvent `json:"events"`
	TotalAmount    int64               `json:"totalAmount"`
	PaymentStatus  PaymentStatus       `json:"paymentStatus"`
}

// NewConfirmationRequest builds the confirmation payload for a stored registration.
func NewConfirmationRequest(reg *Registration) *ConfirmationRequest {
	events := make([]ConfirmationEvent, 0, len(reg.Events))
	for _, e := range reg.Events {
		events = append(events, ConfirmationEvent{Name: e.Name, Price: e.Price})
	}
	return &ConfirmationRequest{
		Email:          reg.Email,
		Name:           reg.Name,
		RegistrationID: reg.ID,
		Events:         events,
		TotalAmount:    reg.TotalAmount,
		PaymentStatus:  reg.PaymentStatus,
	}
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, req *ConfirmationRequest) error
}

// ConfirmationPublisher hands a confirmation off for best-effort delivery. A returned error
// never invalidates the registration it describes.
type ConfirmationPublisher interface {
	Publish(ctx context.Context, req *ConfirmationRequest) error
}
