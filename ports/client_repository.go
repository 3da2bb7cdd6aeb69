package ports

import (
	"context"

	"prism/models"

	"github.com/google/uuid"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	// Create inserts a new client; a duplicate gcp_project_id is reported
	// as a structured error and leaves the existing row untouched
	Create(ctx context.Context, client *models.Client) error

	// GetByID retrieves a client by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)

	// List returns all clients, newest first
	List(ctx context.Context) ([]*models.Client, error)

	// Update rewrites a client's name and project ID
	Update(ctx context.Context, client *models.Client) error

	// Delete removes a client and, via cascade, its details
	Delete(ctx context.Context, id uuid.UUID) error

	// GetDetails returns the extended fields stored for a client
	GetDetails(ctx context.Context, clientID uuid.UUID) ([]*models.ClientDetail, error)

	// UpsertDetail inserts or replaces one extended field
	UpsertDetail(ctx context.Context, detail *models.ClientDetail) error
}
