package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

type smtpMailer struct {
	client      *mail.Client
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func newSMTPMailer(cfg SMTPConfig, fromAddress, fromName string, logger *slog.Logger) (*smtpMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	opts := []mail.Option{}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	c, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise smtp client: %w", err)
	}
	return &smtpMailer{client: c, fromAddress: fromAddress, fromName: fromName, logger: logger}, nil
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, html, text string) error {
	msg, err := buildMessage(m.fromName, m.fromAddress, to, subject, html, text)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	m.logger.DebugContext(ctx, "email sent via SMTP", "to", to)
	return nil
}

// buildMessage assembles a multipart message with a plain text body and an HTML alternative.
func buildMessage(fromName, fromAddress, to, subject, html, text string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, fromAddress); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	switch {
	case text != "" && html != "":
		msg.SetBodyString(mail.TypeTextPlain, text)
		msg.AddAlternativeString(mail.TypeTextHTML, html)
	case html != "":
		msg.SetBodyString(mail.TypeTextHTML, html)
	default:
		msg.SetBodyString(mail.TypeTextPlain, text)
	}
	return msg, nil
}
