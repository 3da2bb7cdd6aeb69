package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prism/models"
	"prism/ports"

	apperrors "prism/internal/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// defaultFeedLimit caps the message feed when the caller sets no limit
const defaultFeedLimit = 100

// WebhookRepositoryImpl implements WebhookRepository for PostgreSQL
type WebhookRepositoryImpl struct {
	db *sqlx.DB
}

// NewWebhookRepository creates a new PostgreSQL webhook repository
func NewWebhookRepository(db *sqlx.DB) ports.WebhookRepository {
	return &WebhookRepositoryImpl{db: db}
}

// Insert stores one received message
func (r *WebhookRepositoryImpl) Insert(ctx context.Context, msg *models.WebhookMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO webhook_messages (id, source, severity, message_type, title, content, payload, received_at)
		VALUES (:id, :source, :severity, :message_type, :title, :content, :payload, NOW())
	`, msg)
	return err
}

// List returns messages newest first, filtered by severity and source
func (r *WebhookRepositoryImpl) List(ctx context.Context, filter ports.WebhookFilter) ([]*models.WebhookMessage, error) {
	query := `
		SELECT id, source, severity, message_type, title, content, payload, received_at
		FROM webhook_messages
	`

	var args []interface{}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		query += fmt.Sprintf(" WHERE severity = $%d", len(args))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		if len(args) == 1 {
			query += fmt.Sprintf(" WHERE source = $%d", len(args))
		} else {
			query += fmt.Sprintf(" AND source = $%d", len(args))
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY received_at DESC LIMIT $%d", len(args))

	var messages []*models.WebhookMessage
	err := r.db.SelectContext(ctx, &messages, query, args...)
	return messages, err
}

// GetByID retrieves one message
func (r *WebhookRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.WebhookMessage, error) {
	var msg models.WebhookMessage
	err := r.db.GetContext(ctx, &msg, `
		SELECT id, source, severity, message_type, title, content, payload, received_at
		FROM webhook_messages
		WHERE id = $1
	`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("Message with ID %s", id))
		}
		return nil, err
	}
	return &msg, nil
}

// Stats returns the total count and the per-severity breakdown
func (r *WebhookRepositoryImpl) Stats(ctx context.Context) (*models.WebhookStats, error) {
	stats := &models.WebhookStats{
		BySeverity: make(map[string]int64),
	}

	if err := r.db.GetContext(ctx, &stats.TotalMessages,
		`SELECT COUNT(*) FROM webhook_messages`); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT severity, COUNT(*)
		FROM webhook_messages
		GROUP BY severity
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var severity string
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, err
		}
		stats.BySeverity[severity] = count
	}
	return stats, rows.Err()
}

// Sources returns the distinct message sources
func (r *WebhookRepositoryImpl) Sources(ctx context.Context) ([]string, error) {
	var sources []string
	err := r.db.SelectContext(ctx, &sources, `
		SELECT DISTINCT source FROM webhook_messages ORDER BY source
	`)
	return sources, err
}

// Delete removes one message
func (r *WebhookRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM webhook_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound(fmt.Sprintf("Message with ID %s", id))
	}
	return nil
}
