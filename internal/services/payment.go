package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"goonj/internal/domain"
)

// minorUnitsPerMajor scales whole rupees to paise.
const minorUnitsPerMajor = 100

type paymentService struct {
	gateway  domain.PaymentGateway
	catalog  domain.Catalog
	currency string
}

// NewPaymentService returns the card payment bridge. A nil gateway disables card payments.
func NewPaymentService(gateway domain.PaymentGateway, catalog domain.Catalog, currency string) domain.PaymentService {
	if currency == "" {
		currency = "inr"
	}
	return &paymentService{gateway: gateway, catalog: catalog, currency: strings.ToLower(currency)}
}

// CreateIntent prices the selection from the catalog and opens a gateway intent for it.
// A declared amount that differs from the catalog total is rejected.
func (s *paymentService) CreateIntent(ctx context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntent, error) {
	if s.gateway == nil {
		return nil, domain.ErrPaymentUnavailable
	}
	selection, err := domain.SelectionFromIDs(s.catalog, req.EventIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if selection.IsEmpty() {
		return nil, fmt.Errorf("%w: no events selected", domain.ErrInvalidInput)
	}
	total := selection.Total()
	if total <= 0 {
		return nil, fmt.Errorf("%w: selection is free", domain.ErrInvalidInput)
	}
	if req.Amount != 0 && req.Amount != total {
		return nil, fmt.Errorf("%w: declared %d, selection costs %d", domain.ErrAmountMismatch, req.Amount, total)
	}

	ids := make([]string, 0, selection.Len())
	for _, e := range selection.Events() {
		ids = append(ids, e.ID)
	}
	metadata := map[string]string{
		"event_ids": strings.Join(ids, ","),
		"total":     strconv.FormatInt(total, 10),
	}
	intent, err := s.gateway.CreateIntent(ctx, total*minorUnitsPerMajor, s.currency, metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPaymentGateway, err)
	}
	return intent, nil
}

// VerifyIntent confirms the intent succeeded for amount whole currency units.
func (s *paymentService) VerifyIntent(ctx context.Context, intentID string, amount int64) error {
	if s.gateway == nil {
		return domain.ErrPaymentUnavailable
	}
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return fmt.Errorf("%w: missing payment intent", domain.ErrPaymentNotConfirmed)
	}
	intent, err := s.gateway.GetIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown payment intent", domain.ErrPaymentNotConfirmed)
		}
		return fmt.Errorf("%w: %w", domain.ErrPaymentGateway, err)
	}
	if intent.Status != domain.PaymentIntentSucceeded {
		return fmt.Errorf("%w: intent is %s", domain.ErrPaymentNotConfirmed, intent.Status)
	}
	if intent.Amount != amount*minorUnitsPerMajor || (intent.Currency != "" && !strings.EqualFold(intent.Currency, s.currency)) {
		return fmt.Errorf("%w: intent charged %d %s", domain.ErrAmountMismatch, intent.Amount, intent.Currency)
	}
	return nil
}
