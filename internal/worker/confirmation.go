// Package worker runs background consumers that act on queued registration work.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"goonj/internal/adapters/rabbit"
	"goonj/internal/domain"
)

// Source delivers message bodies to a handler until ctx is done.
type Source interface {
	Run(ctx context.Context, handle rabbit.Handler) error
}

// ConfirmationWorker sends confirmation emails for queued registrations.
type ConfirmationWorker struct {
	source Source
	email  domain.EmailService
	logger *slog.Logger

	done   chan struct{}
	cancel context.CancelFunc
	err    error
}

func NewConfirmationWorker(source Source, email domain.EmailService, logger *slog.Logger) *ConfirmationWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfirmationWorker{source: source, email: email, logger: logger}
}

// Handle decodes one queued confirmation and sends it. Malformed bodies are permanent failures.
func (w *ConfirmationWorker) Handle(ctx context.Context, body []byte) error {
	var req domain.ConfirmationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		w.logger.ErrorContext(ctx, "failed to decode confirmation", "err", err)
		return rabbit.Permanent(fmt.Errorf("decode confirmation: %w", err))
	}
	if req.Email == "" || req.RegistrationID == "" {
		return rabbit.Permanent(fmt.Errorf("confirmation for %q has no recipient", req.RegistrationID))
	}
	if err := w.email.SendRegistrationConfirmation(ctx, &req); err != nil {
		return err
	}
	return nil
}

// Start runs the worker in the background until Stop is called or ctx is done.
func (w *ConfirmationWorker) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	w.logger.Info("confirmation worker started")
	go func() {
		defer close(w.done)
		if err := w.source.Run(cctx, w.Handle); err != nil {
			w.logger.Error("confirmation worker stopped", "err", err)
			w.err = err
			return
		}
		w.logger.Info("confirmation worker stopped")
	}()
}

// Done is closed once the worker has stopped.
func (w *ConfirmationWorker) Done() <-chan struct{} {
	return w.done
}

// Stop cancels the worker, waits for it to finish and returns the error it stopped with.
func (w *ConfirmationWorker) Stop() error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()
	<-w.done
	return w.err
}
