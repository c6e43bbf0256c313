package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"goonj/config"
	_ "goonj/docs"
	"goonj/internal/adapters/rabbit"
	"goonj/internal/catalog"
	"goonj/internal/clock"
	httpdelivery "goonj/internal/delivery/http"
	"goonj/internal/delivery/http/controllers"
	"goonj/internal/domain"
	"goonj/internal/repository/postgres"
	"goonj/internal/services"
	"goonj/internal/validation"
)

const shutdownTimeout = 15 * time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API: catalog, registration submission, card payment intents and the
admin dashboard. Stops gracefully on SIGINT or SIGTERM, waiting for queued confirmation
emails when NOTIFY_DRIVER is inline.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving (postgres store only)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := requireJWTSecret(cfg); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close stores", "err", err)
		}
	}()
	if serveMigrate {
		if err := migrateIfPostgres(cfg); err != nil {
			return err
		}
	}

	guard, closeGuard, err := newGuard(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeGuard() }()

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}

	cat := catalog.Default()
	payments := newPaymentService(cfg, cat)
	registrations := services.NewRegistrationService(cat, validation.New(), st.registrations, payments, guard, publisher, logger)
	admin := services.NewAdminService(st.registrations, cfg.AdminCacheTTL, clock.NewSystem(), logger)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Catalog:      controllers.NewCatalogController(logger, cat),
		Registration: controllers.NewRegistrationController(logger, registrations),
		Payment:      controllers.NewPaymentController(logger, payments),
		Admin:        controllers.NewAdminController(logger, admin),
		Auth:         controllers.NewAuthController(logger, newAuthService(cfg, st.admins)),
	}, newJWT(cfg), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.NewHandler(mux, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.StoreDriver, "notify", cfg.NotifyDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	if err := closePublisher(shutdownCtx); err != nil {
		logger.Error("confirmation publisher shutdown", "err", err)
	}
	return nil
}

// newPublisher returns the confirmation publisher for NOTIFY_DRIVER and a function that drains
// and closes it.
func newPublisher(cfg *config.Config) (domain.ConfirmationPublisher, func(context.Context) error, error) {
	if cfg.NotifyDriver == config.NotifyRabbitMQ {
		client, err := rabbit.Dial(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			return nil, nil, err
		}
		return rabbit.NewPublisher(client), func(context.Context) error { return client.Close() }, nil
	}
	emailSvc, err := newEmailService(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	async := services.NewAsyncConfirmationPublisher(emailSvc, logger)
	return async, async.Close, nil
}

func migrateIfPostgres(cfg *config.Config) error {
	if cfg.StoreDriver != config.StorePostgres {
		logger.Info("skipping migrations", "store", cfg.StoreDriver)
		return nil
	}
	db, err := postgres.Open(cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.MigrateUp(db); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}
