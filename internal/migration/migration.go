package migration

import (
	"context"

	"prism/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() int
}

// step is one versioned schema change. Steps run in version order inside a
// transaction and are recorded in schema_migrations, so reruns are no-ops.
type step struct {
	version int
	name    string
	up      func(ctx context.Context, tx *sqlx.Tx) error
}

// MigrationRunner applies versioned schema migrations at startup
type MigrationRunner struct {
	steps []step
}

// NewRunner creates a migration runner with the full step sequence
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		steps: []step{
			{1, "create clients table", createClientsTable},
			{2, "create client_details table", createClientDetailsTable},
			{3, "create documents table", createDocumentsTable},
			{4, "create settings table", createSettingsTable},
			{5, "create webhook_messages table", createWebhookMessagesTable},
			{6, "create indexes", createIndexes},
			{7, "insert default settings", insertDefaultSettings},
		},
	}
}

// Version returns the highest migration version this runner knows
func (r *MigrationRunner) Version() int {
	if len(r.steps) == 0 {
		return 0
	}
	return r.steps[len(r.steps)-1].version
}

// Run applies every migration step not yet recorded in schema_migrations,
// in version order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.ensureVersionTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create schema_migrations table")
	}

	applied, err := r.appliedVersions(ctx, db)
	if err != nil {
		return errors.Wrap(err, "failed to read applied migrations")
	}

	for _, s := range r.steps {
		if applied[s.version] {
			continue
		}
		if err := r.apply(ctx, db, s); err != nil {
			return errors.Wrapf(err, "migration %d (%s) failed", s.version, s.name)
		}
	}
	return nil
}

func (r *MigrationRunner) ensureVersionTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) appliedVersions(ctx context.Context, db *sqlx.DB) (map[int]bool, error) {
	var versions []int
	if err := db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations ORDER BY version`); err != nil {
		return nil, err
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// apply runs one step and its version record in a single transaction
func (r *MigrationRunner) apply(ctx context.Context, db *sqlx.DB, s step) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.up(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
		s.version, s.name); err != nil {
		return err
	}
	return tx.Commit()
}

func createClientsTable(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS clients (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			client_name VARCHAR(255) NOT NULL,
			gcp_project_id VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func createClientDetailsTable(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS client_details (
			client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
			field_name VARCHAR(100) NOT NULL,
			field_value TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (client_id, field_name)
		)
	`)
	return err
}

func createDocumentsTable(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(255) NOT NULL,
			doc_url TEXT NOT NULL,
			doc_type VARCHAR(50) NOT NULL DEFAULT 'other',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func createSettingsTable(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(100) PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func createWebhookMessagesTable(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS webhook_messages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			source VARCHAR(255) NOT NULL DEFAULT 'Unknown',
			severity VARCHAR(20) NOT NULL DEFAULT 'info',
			message_type VARCHAR(20) NOT NULL DEFAULT 'text',
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			payload JSONB,
			received_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func createIndexes(ctx context.Context, tx *sqlx.Tx) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_webhook_messages_received_at ON webhook_messages(received_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_webhook_messages_severity ON webhook_messages(severity)`,
		`CREATE INDEX IF NOT EXISTS idx_webhook_messages_source ON webhook_messages(source)`,
		`CREATE INDEX IF NOT EXISTS idx_client_details_client_id ON client_details(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func insertDefaultSettings(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ('theme', 'light')
		ON CONFLICT (key) DO NOTHING
	`)
	return err
}
