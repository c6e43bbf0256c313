package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"goonj/config"
	"goonj/internal/adapters/auth"
	"goonj/internal/adapters/email"
	"goonj/internal/adapters/redis"
	"goonj/internal/adapters/stripe"
	"goonj/internal/clock"
	"goonj/internal/domain"
	"goonj/internal/repository/firestore"
	"goonj/internal/repository/postgres"
	"goonj/internal/services"
)

// stores holds the configured repositories and the connections behind them.
type stores struct {
	registrations domain.RegistrationRepository
	admins        domain.AdminRepository
	closers       []func() error
}

func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return &stores{
			registrations: firestore.NewRegistrationRepository(client, cfg.FirestoreCollection),
			admins:        firestore.NewAdminRepository(client, firestore.AdminCollection),
			closers:       []func() error{client.Close},
		}, nil
	default:
		db, err := postgres.Open(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to reach database: %w", err)
		}
		return &stores{
			registrations: postgres.NewRegistrationRepository(db),
			admins:        postgres.NewAdminRepository(db),
			closers:       []func() error{db.Close},
		}, nil
	}
}

func newEmailService(cfg *config.Config, logger *slog.Logger) (domain.EmailService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
		SMTP: email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return services.NewEmailService(mailer, email.NewTemplateRenderer(), logger), nil
}

// newPaymentService returns a payment service that reports card payments as unavailable when
// no Stripe key is configured.
func newPaymentService(cfg *config.Config, catalog domain.Catalog) domain.PaymentService {
	var gateway domain.PaymentGateway
	if cfg.StripeSecretKey != "" {
		gateway = stripe.NewGateway(cfg.StripeSecretKey)
	}
	return services.NewPaymentService(gateway, catalog, cfg.PaymentCurrency)
}

// newGuard returns a Redis idempotency guard, or nil when REDIS_URL is unset. The store's
// unique key constraint still collapses duplicates without it.
func newGuard(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.IdempotencyGuard, func() error, error) {
	if cfg.RedisURL == "" {
		return nil, func() error { return nil }, nil
	}
	rdb, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, continuing without idempotency guard", "err", err)
		_ = rdb.Close()
		return nil, func() error { return nil }, nil
	}
	return redis.NewIdempotencyGuard(rdb, cfg.IdempotencyTTL), rdb.Close, nil
}

// requireJWTSecret fails when admin routes would be served without a signing secret.
func requireJWTSecret(cfg *config.Config) error {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New("JWT_SECRET must be set to serve the admin routes")
	}
	return nil
}

func newJWT(cfg *config.Config) *auth.JWT {
	return auth.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, domain.RoleAdmin, clock.NewSystem())
}

func newAuthService(cfg *config.Config, admins domain.AdminRepository) domain.AuthService {
	return services.NewAuthService(admins, auth.NewBcryptHasher(cfg.BcryptCost), newJWT(cfg), cfg.JWTExpiry, clock.NewSystem())
}
