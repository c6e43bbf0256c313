package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"goonj/internal/domain"
)

// fakeRegistrationRepo implements domain.RegistrationRepository in memory.
type fakeRegistrationRepo struct {
	mu        sync.Mutex
	records   []*domain.Registration
	creates   int
	createErr error
	listErr   error
	deleteErr error
	getErr    error
	nextID    int
	now       time.Time
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{now: time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if reg.IdempotencyKey != "" {
		for _, r := range f.records {
			if r.IdempotencyKey == reg.IdempotencyKey {
				return domain.ErrDuplicateSubmission
			}
		}
	}
	f.nextID++
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.now = f.now.Add(time.Minute)
	reg.CreatedAt, reg.UpdatedAt, reg.SubmittedAt = f.now, f.now, f.now
	f.records = append(f.records, reg)
	return nil
}

func (f *fakeRegistrationRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.records {
		if r.IdempotencyKey == key {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) ListAll(ctx context.Context) ([]*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Registration, len(f.records))
	copy(out, f.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeGuard implements domain.IdempotencyGuard.
type fakeGuard struct {
	held     map[string]bool
	err      error
	released []string
}

func newFakeGuard() *fakeGuard { return &fakeGuard{held: map[string]bool{}} }

func (f *fakeGuard) Reserve(ctx context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeGuard) Release(ctx context.Context, key string) error {
	delete(f.held, key)
	f.released = append(f.released, key)
	return nil
}

// fakePublisher implements domain.ConfirmationPublisher.
type fakePublisher struct {
	published []*domain.ConfirmationRequest
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, req *domain.ConfirmationRequest) error {
	f.published = append(f.published, req)
	return f.err
}

// fakePaymentService implements domain.PaymentService.
type fakePaymentService struct {
	verifyErr error
	verified  []string
	amounts   []int64
}

func (f *fakePaymentService) CreateIntent(ctx context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntent, error) {
	return nil, errors.New("not used")
}

func (f *fakePaymentService) VerifyIntent(ctx context.Context, intentID string, amount int64) error {
	f.verified = append(f.verified, intentID)
	f.amounts = append(f.amounts, amount)
	return f.verifyErr
}

// fakeGateway implements domain.PaymentGateway.
type fakeGateway struct {
	intents      map[string]*domain.PaymentIntent
	createErr    error
	getErr       error
	lastAmount   int64
	lastCurrency string
	lastMetadata map[string]string
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.PaymentIntent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastAmount, f.lastCurrency, f.lastMetadata = amount, currency, metadata
	return &domain.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret", Amount: amount, Currency: currency, Status: domain.PaymentIntentRequiresPaymentMethod}, nil
}

func (f *fakeGateway) GetIntent(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if pi, ok := f.intents[id]; ok {
		return pi, nil
	}
	return nil, domain.ErrNotFound
}

// fakeAdminRepo implements domain.AdminRepository.
type fakeAdminRepo struct {
	byEmail   map[string]*domain.Admin
	createErr error
	getErr    error
}

func newFakeAdminRepo() *fakeAdminRepo { return &fakeAdminRepo{byEmail: map[string]*domain.Admin{}} }

func (f *fakeAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	a.ID = fmt.Sprintf("admin-%d", len(f.byEmail)+1)
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err   error
	roles []string
}

func (f *fakeTokenIssuer) Issue(subject, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.roles = roles
	return "token-" + subject, nil
}

// fakeMailer implements domain.Mailer.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeRenderer implements domain.EmailTemplateRenderer.
type fakeRenderer struct {
	names []string
	err   error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.names = append(f.names, name)
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

// fakeEmailService implements domain.EmailService.
type fakeEmailService struct {
	mu    sync.Mutex
	sent  []*domain.ConfirmationRequest
	err   error
	block chan struct{}
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, req *domain.ConfirmationRequest) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	return f.err
}

func (f *fakeEmailService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
