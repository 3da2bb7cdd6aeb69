package app

import (
	"context"
	"net/url"
	"strings"

	"prism/models"
	"prism/ports"

	apperrors "prism/internal/errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DocumentService manages shared document links
type DocumentService struct {
	repo   ports.DocumentRepository
	logger *log.Logger
}

// NewDocumentService creates a document service
func NewDocumentService(repo ports.DocumentRepository, logger *log.Logger) *DocumentService {
	return &DocumentService{repo: repo, logger: logger}
}

// Create stores a document link. The type is detected from the URL; a blank
// title is derived from the URL's document ID.
func (s *DocumentService) Create(ctx context.Context, docURL, title string) (*models.Document, error) {
	docURL = strings.TrimSpace(docURL)
	if docURL == "" {
		return nil, apperrors.ValidationError("document URL is required")
	}
	if parsed, err := url.Parse(docURL); err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, apperrors.ValidationError("document URL must be a valid http(s) link")
	}

	docType := models.DetectDocType(docURL)
	title = strings.TrimSpace(title)
	if title == "" {
		title = models.TitleFromURL(docURL, docType)
	}

	doc := &models.Document{
		Title:   title,
		DocURL:  docURL,
		DocType: docType,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document added", "title", doc.Title, "type", doc.DocType)
	return doc, nil
}

// List returns all documents, newest first
func (s *DocumentService) List(ctx context.Context) ([]*models.Document, error) {
	return s.repo.List(ctx)
}

// Delete removes a document link
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
