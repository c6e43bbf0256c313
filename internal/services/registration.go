package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"goonj/internal/domain"
	"goonj/internal/validation"
)

// FormValidator checks a registration form against the current selection.
type FormValidator interface {
	Validate(form domain.RegistrationForm, selection domain.Selection, payment domain.PaymentInfo) domain.FieldErrors
}

type registrationService struct {
	catalog   domain.Catalog
	validator FormValidator
	repo      domain.RegistrationRepository
	payments  domain.PaymentService
	guard     domain.IdempotencyGuard
	publisher domain.ConfirmationPublisher
	logger    *slog.Logger
}

// NewRegistrationService wires the submission pipeline. guard and publisher are optional.
func NewRegistrationService(
	catalog domain.Catalog,
	validator FormValidator,
	repo domain.RegistrationRepository,
	payments domain.PaymentService,
	guard domain.IdempotencyGuard,
	publisher domain.ConfirmationPublisher,
	logger *slog.Logger,
) domain.RegistrationService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &registrationService{
		catalog:   catalog,
		validator: validator,
		repo:      repo,
		payments:  payments,
		guard:     guard,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *registrationService) Quote(ctx context.Context, eventIDs []string) (*domain.Quote, error) {
	selection, err := domain.SelectionFromIDs(s.catalog, eventIDs)
	if err != nil {
		return nil, domain.NewValidationError(domain.FieldErrors{validation.FieldEvents: validation.MsgUnknownEvent})
	}
	return &domain.Quote{Events: selection.Events(), Total: selection.Total()}, nil
}

func (s *registrationService) Submit(ctx context.Context, in domain.SubmissionInput) (*domain.SubmissionResult, error) {
	selection, err := domain.SelectionFromIDs(s.catalog, in.EventIDs)
	fields := s.validator.Validate(in.Form, selection, in.Payment)
	if fields == nil {
		fields = domain.FieldErrors{}
	}
	var unknown *domain.UnknownEventsError
	if errors.As(err, &unknown) {
		fields[validation.FieldEvents] = validation.MsgUnknownEvent
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	if in.Payment.Method == domain.PaymentMethodCard && selection.Total() > 0 {
		if s.payments == nil {
			return nil, domain.ErrPaymentUnavailable
		}
		if err := s.payments.VerifyIntent(ctx, in.Payment.TransactionID, selection.Total()); err != nil {
			return nil, err
		}
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	reserved := false
	if key != "" && s.guard != nil {
		ok, err := s.guard.Reserve(ctx, key)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "idempotency guard unavailable, relying on store constraint", "err", err)
		case !ok:
			return s.existing(ctx, key)
		default:
			reserved = true
		}
	}

	reg := domain.NewRegistration(in.Form, selection, in.Payment, key)
	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) && key != "" {
			return s.existing(ctx, key)
		}
		if reserved {
			if rerr := s.guard.Release(context.WithoutCancel(ctx), key); rerr != nil {
				s.logger.WarnContext(ctx, "failed to release idempotency key", "err", rerr)
			}
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	s.logger.InfoContext(ctx, "registration stored", "registration_id", reg.ID, "events", len(reg.Events), "total_amount", reg.TotalAmount, "payment_status", reg.PaymentStatus)
	s.notify(ctx, reg)

	return &domain.SubmissionResult{RegistrationID: reg.ID, Registration: reg, Created: true}, nil
}

// existing resolves a duplicate idempotency key to the registration it already produced.
func (s *registrationService) existing(ctx context.Context, key string) (*domain.SubmissionResult, error) {
	reg, err := s.repo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSubmissionInProgress
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &domain.SubmissionResult{RegistrationID: reg.ID, Registration: reg, Created: false}, nil
}

func (s *registrationService) notify(ctx context.Context, reg *domain.Registration) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, domain.NewConfirmationRequest(reg)); err != nil {
		s.logger.WarnContext(ctx, "confirmation not queued", "registration_id", reg.ID, "err", err)
	}
}
