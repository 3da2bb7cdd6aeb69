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

// DocumentRepositoryImpl implements DocumentRepository for PostgreSQL
type DocumentRepositoryImpl struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new PostgreSQL document repository
func NewDocumentRepository(db *sqlx.DB) ports.DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

// Create inserts a new document link
func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *models.Document) error {
	doc.ID = uuid.New()
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO documents (id, title, doc_url, doc_type, created_at)
		VALUES (:id, :title, :doc_url, :doc_type, NOW())
	`, doc)
	return err
}

// GetByID retrieves a document by its ID
func (r *DocumentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := r.db.GetContext(ctx, &doc, `
		SELECT id, title, doc_url, doc_type, created_at
		FROM documents
		WHERE id = $1
	`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("Document with ID %s", id))
		}
		return nil, err
	}
	return &doc, nil
}

// List returns all documents, newest first
func (r *DocumentRepositoryImpl) List(ctx context.Context) ([]*models.Document, error) {
	var docs []*models.Document
	err := r.db.SelectContext(ctx, &docs, `
		SELECT id, title, doc_url, doc_type, created_at
		FROM documents
		ORDER BY created_at DESC
	`)
	return docs, err
}

// Delete removes a document link
func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound(fmt.Sprintf("Document with ID %s", id))
	}
	return nil
}
