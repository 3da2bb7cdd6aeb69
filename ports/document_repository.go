package ports

import (
	"context"

	"prism/models"

	"github.com/google/uuid"
)

// DocumentRepository defines the interface for document link storage
type DocumentRepository interface {
	// Create inserts a new document link
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)

	// List returns all documents, newest first
	List(ctx context.Context) ([]*models.Document, error)

	// Delete removes a document link
	Delete(ctx context.Context, id uuid.UUID) error
}
