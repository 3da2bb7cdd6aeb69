package main

import (
	"context"

	"prism/internal"
	"prism/internal/config"
	"prism/internal/migration"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Standalone migration runner. Deployments that separate schema changes
// from app rollout run this before starting the dashboard.
func main() {
	logger := internal.NewLogger("migrate")

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

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	logger.Info("schema up to date", "version", migrator.Version())
}
