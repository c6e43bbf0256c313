package services

import (
	"context"
	"fmt"
	"log/slog"

	"goonj/internal/domain"
)

const confirmationTemplate = "registration_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRegistrationConfirmation renders the "registration_confirmation" template and sends it to the registrant.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, req *domain.ConfirmationRequest) error {
	if req == nil {
		return fmt.Errorf("confirmation request is nil")
	}
	if req.Email == "" {
		return fmt.Errorf("confirmation request has no recipient")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(confirmationTemplate, req)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", confirmationTemplate, err)
	}
	if err := s.mailer.Send(ctx, req.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	s.logger.InfoContext(ctx, "confirmation email sent", "registration_id", req.RegistrationID, "to", req.Email)
	return nil
}
