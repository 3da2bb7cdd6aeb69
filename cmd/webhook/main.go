package main

import (
	"prism/adapters/postgres"
	"prism/app"
	"prism/internal"
	"prism/internal/config"
	"prism/internal/metrics"
	"prism/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Standalone webhook receiver. Useful when the receiver is deployed on its
// own host facing the workflow runners while the dashboard stays internal.
// Assumes the schema is already migrated.
func main() {
	logger := internal.NewLogger("webhook")

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	service := app.NewWebhookService(postgres.NewWebhookRepository(db), cfg.Webhook.Secret, metrics.New(), logger)

	receiver := ui.NewWebhookServer(cfg.Server.GinMode, service, logger)
	if err := receiver.Start(cfg.Server.WebhookPort); err != nil {
		logger.Fatal("webhook receiver stopped", "error", err)
	}
}
