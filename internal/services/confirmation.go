package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"goonj/internal/domain"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("confirmation publisher closed")

const defaultSendTimeout = 30 * time.Second

// AsyncConfirmationPublisher sends confirmations on background goroutines, detached from the
// request that produced them. Send failures are logged.
type AsyncConfirmationPublisher struct {
	email       domain.EmailService
	logger      *slog.Logger
	sendTimeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncConfirmationPublisher returns a publisher that delivers through email.
func NewAsyncConfirmationPublisher(email domain.EmailService, logger *slog.Logger) *AsyncConfirmationPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AsyncConfirmationPublisher{email: email, logger: logger, sendTimeout: defaultSendTimeout}
}

func (p *AsyncConfirmationPublisher) Publish(ctx context.Context, req *domain.ConfirmationRequest) error {
	if req == nil {
		return errors.New("confirmation request is nil")
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPublisherClosed
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.sendTimeout)
		defer cancel()
		if err := p.email.SendRegistrationConfirmation(sendCtx, req); err != nil {
			p.logger.ErrorContext(sendCtx, "confirmation email failed", "registration_id", req.RegistrationID, "err", err)
		}
	}()
	return nil
}

// Close stops accepting confirmations and waits for in-flight sends or ctx expiry.
func (p *AsyncConfirmationPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
