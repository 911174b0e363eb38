package cmd

import (
	"context"
	"log"
	"time"

	"github.com/averaldo/permissions-app/internal"
	"github.com/averaldo/permissions-app/internal/notifier"
	"github.com/averaldo/permissions-app/pkg/logger"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify [operation]",
	Short: "Publish a test notification",
	Long:  `Publish a test operation notification to the configured exchange for debugging consumers`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestNotification(args[0])
	},
}

func publishTestNotification(operation string) {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.LoggerWrapper()

	publisher, err := notifier.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange, lg)
	if err != nil {
		log.Fatalf("failed to initialize publisher: %v", err)
	}
	defer publisher.Close()

	ctx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := publisher.Notify(ctx, operation); err != nil {
		lg.Error("failed to publish test notification", "error", err, "operation", operation)
		return
	}

	lg.Info("test notification published", "operation", operation, "exchange", cfg.RabbitMQ.Exchange)
}
