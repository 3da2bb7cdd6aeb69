package ports

import (
	"context"

	"prism/models"

	"github.com/google/uuid"
)

// WebhookFilter narrows the message feed. Zero values mean no filtering;
// Limit caps the result set and defaults at the repository.
type WebhookFilter struct {
	Severity string
	Source   string
	Limit    int
}

// WebhookRepository defines the interface for webhook message storage
type WebhookRepository interface {
	// Insert stores one received message
	Insert(ctx context.Context, msg *models.WebhookMessage) error

	// List returns messages newest first, filtered by severity and source
	List(ctx context.Context, filter WebhookFilter) ([]*models.WebhookMessage, error)

	// GetByID retrieves one message
	GetByID(ctx context.Context, id uuid.UUID) (*models.WebhookMessage, error)

	// Stats returns the total count and the per-severity breakdown
	Stats(ctx context.Context) (*models.WebhookStats, error)

	// Sources returns the distinct message sources
	Sources(ctx context.Context) ([]string, error)

	// Delete removes one message
	Delete(ctx context.Context, id uuid.UUID) error
}
