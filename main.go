package main

import (
	"context"

	"prism/adapters/postgres"
	"prism/app"
	"prism/internal"
	"prism/internal/config"
	"prism/internal/errors"
	"prism/internal/metrics"
	"prism/internal/migration"
	"prism/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and brings the schema up to date
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	logger := internal.NewLogger("prism")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	reference, err := config.LoadReferenceColumns(cfg.Export.ReferenceFile)
	if err != nil {
		logger.Fatal("failed to load reference columns", "error", err)
	}

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	m := metrics.New()

	clientRepo := postgres.NewClientRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	webhookRepo := postgres.NewWebhookRepository(db)

	webhookService := app.NewWebhookService(webhookRepo, cfg.Webhook.Secret, m, logger)

	// The receiver gets its own listener so workflow runners never touch the
	// dashboard port
	receiver := ui.NewWebhookServer(cfg.Server.GinMode, webhookService, internal.NewLogger("webhook"))
	go func() {
		if err := receiver.Start(cfg.Server.WebhookPort); err != nil {
			logger.Fatal("webhook receiver stopped", "error", err)
		}
	}()

	dashboard := ui.NewApp(ui.Deps{
		Exports:   app.NewExportService(reference, cfg.Upload.MaxBytes, cfg.Export.MaxConcurrent, m, logger),
		Clients:   app.NewClientService(clientRepo, logger),
		Documents: app.NewDocumentService(documentRepo, logger),
		Settings:  app.NewSettingsService(settingsRepo),
		Webhooks:  webhookService,
		Metrics:   m,
		Logger:    logger,
	})
	if err := dashboard.Start(cfg.Server.Port); err != nil {
		logger.Fatal("dashboard stopped", "error", err)
	}
}
