package controllers

import (
	"context"
	"io"
	"log/slog"

	"goonj/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeRegistrationService struct {
	quote      *domain.Quote
	quoteErr   error
	result     *domain.SubmissionResult
	submitErr  error
	lastIDs    []string
	lastSubmit domain.SubmissionInput
}

func (f *fakeRegistrationService) Quote(_ context.Context, eventIDs []string) (*domain.Quote, error) {
	f.lastIDs = eventIDs
	return f.quote, f.quoteErr
}

func (f *fakeRegistrationService) Submit(_ context.Context, in domain.SubmissionInput) (*domain.SubmissionResult, error) {
	f.lastSubmit = in
	return f.result, f.submitErr
}

type fakePaymentService struct {
	intent  *domain.PaymentIntent
	err     error
	lastReq domain.PaymentIntentRequest
}

func (f *fakePaymentService) CreateIntent(_ context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntent, error) {
	f.lastReq = req
	return f.intent, f.err
}

func (f *fakePaymentService) VerifyIntent(context.Context, string, int64) error { return nil }

type fakeAdminService struct {
	listing     *domain.RegistrationListing
	listErr     error
	deleteErr   error
	csv         string
	filename    string
	exportErr   error
	lastFilter  domain.RegistrationFilter
	lastRefresh bool
	lastDelete  string
}

func (f *fakeAdminService) FetchAll(context.Context) ([]*domain.Registration, error) {
	return nil, nil
}

func (f *fakeAdminService) List(_ context.Context, filter domain.RegistrationFilter, refresh bool) (*domain.RegistrationListing, error) {
	f.lastFilter = filter
	f.lastRefresh = refresh
	return f.listing, f.listErr
}

func (f *fakeAdminService) Delete(_ context.Context, id string) error {
	f.lastDelete = id
	return f.deleteErr
}

func (f *fakeAdminService) Export(_ context.Context, filter domain.RegistrationFilter, w io.Writer) (string, error) {
	f.lastFilter = filter
	if f.exportErr != nil {
		return "", f.exportErr
	}
	_, _ = io.WriteString(w, f.csv)
	return f.filename, nil
}

type fakeAuthService struct {
	token     string
	err       error
	lastEmail string
}

func (f *fakeAuthService) CreateAdmin(context.Context, string, string, string) (*domain.Admin, error) {
	return nil, nil
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (string, error) {
	f.lastEmail = email
	return f.token, f.err
}

type staticCatalog struct {
	categories []domain.Category
	events     []domain.EventOffering
}

func (c staticCatalog) ListCategories() []domain.Category { return c.categories }

func (c staticCatalog) ListEvents(category domain.Category) []domain.EventOffering {
	var out []domain.EventOffering
	for _, e := range c.events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func (c staticCatalog) Lookup(id string) (domain.EventOffering, bool) {
	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.EventOffering{}, false
}
