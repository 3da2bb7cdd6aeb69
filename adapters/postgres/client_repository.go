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
	"github.com/lib/pq"
)

// ClientRepositoryImpl implements ClientRepository for PostgreSQL
type ClientRepositoryImpl struct {
	db *sqlx.DB
}

// NewClientRepository creates a new PostgreSQL client repository
func NewClientRepository(db *sqlx.DB) ports.ClientRepository {
	return &ClientRepositoryImpl{db: db}
}

// Create inserts a new client
func (r *ClientRepositoryImpl) Create(ctx context.Context, client *models.Client) error {
	client.ID = uuid.New()
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO clients (id, client_name, gcp_project_id, created_at)
		VALUES (:id, :client_name, :gcp_project_id, NOW())
	`, client)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return apperrors.DuplicateProject(client.GCPProjectID)
		}
		return err
	}
	return nil
}

// GetByID retrieves a client by its ID
func (r *ClientRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.GetContext(ctx, &client, `
		SELECT id, client_name, gcp_project_id, created_at
		FROM clients
		WHERE id = $1
	`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clientNotFound(id)
		}
		return nil, err
	}
	return &client, nil
}

// List returns all clients, newest first
func (r *ClientRepositoryImpl) List(ctx context.Context) ([]*models.Client, error) {
	var clients []*models.Client
	err := r.db.SelectContext(ctx, &clients, `
		SELECT id, client_name, gcp_project_id, created_at
		FROM clients
		ORDER BY created_at DESC
	`)
	return clients, err
}

// Update rewrites a client's name and project ID
func (r *ClientRepositoryImpl) Update(ctx context.Context, client *models.Client) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE clients
		SET client_name = :client_name, gcp_project_id = :gcp_project_id
		WHERE id = :id
	`, client)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.DuplicateProject(client.GCPProjectID)
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return clientNotFound(client.ID)
	}
	return nil
}

// Delete removes a client; details cascade
func (r *ClientRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return clientNotFound(id)
	}
	return nil
}

// clientNotFound carries the user-facing wording shown by the dashboard
func clientNotFound(id uuid.UUID) *apperrors.AppError {
	return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("Client with ID %s not found.", id))
}

// GetDetails returns the extended fields stored for a client
func (r *ClientRepositoryImpl) GetDetails(ctx context.Context, clientID uuid.UUID) ([]*models.ClientDetail, error) {
	var details []*models.ClientDetail
	err := r.db.SelectContext(ctx, &details, `
		SELECT client_id, field_name, field_value, updated_at
		FROM client_details
		WHERE client_id = $1
		ORDER BY field_name
	`, clientID)
	return details, err
}

// UpsertDetail inserts or replaces one extended field
func (r *ClientRepositoryImpl) UpsertDetail(ctx context.Context, detail *models.ClientDetail) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO client_details (client_id, field_name, field_value, updated_at)
		VALUES (:client_id, :field_name, :field_value, NOW())
		ON CONFLICT (client_id, field_name)
		DO UPDATE SET field_value = EXCLUDED.field_value, updated_at = NOW()
	`, detail)
	return err
}
