package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"goonj/config"
	"goonj/internal/adapters/rabbit"
	"goonj/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Send confirmation emails queued on RabbitMQ",
	Long: `Consume the confirmation queue (RABBITMQ_QUEUE) and send one email per message.
A message that fails is requeued once; malformed messages are dropped.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if cfg.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required to run the worker")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		emailSvc, err := newEmailService(cfg, logger)
		if err != nil {
			return err
		}
		client, err := rabbit.Dial(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			return err
		}
		defer client.Close()

		w := worker.NewConfirmationWorker(rabbit.NewConsumer(client, cfg.RabbitMQPrefetch, logger), emailSvc, logger)
		w.Start(ctx)
		select {
		case <-ctx.Done():
		case <-w.Done():
		}
		return w.Stop()
	},
}
