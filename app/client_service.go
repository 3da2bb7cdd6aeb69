package app

import (
	"context"
	"regexp"
	"strings"

	"prism/models"
	"prism/ports"

	apperrors "prism/internal/errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// gcpProjectPattern is the GCP project ID format: lowercase, starts with a
// letter, ends with a letter or digit
var gcpProjectPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)

// ClientService manages clients and their extended detail fields
type ClientService struct {
	repo   ports.ClientRepository
	logger *log.Logger
}

// NewClientService creates a client service
func NewClientService(repo ports.ClientRepository, logger *log.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

// ClientWithDetails is a client joined with its detail fields
type ClientWithDetails struct {
	models.Client
	Details map[string]string `json:"details"`
}

// Create validates and stores a new client. The project ID is lowercased
// before the format check so console copy-paste variants pass.
func (s *ClientService) Create(ctx context.Context, name, gcpProjectID string) (*models.Client, error) {
	name = strings.TrimSpace(name)
	gcpProjectID = strings.ToLower(strings.TrimSpace(gcpProjectID))

	if name == "" {
		return nil, apperrors.ValidationError("client name is required")
	}
	if gcpProjectID == "" {
		return nil, apperrors.ValidationError("GCP project ID is required")
	}
	if !gcpProjectPattern.MatchString(gcpProjectID) {
		return nil, apperrors.ValidationError("GCP project ID must start with a letter and contain only lowercase letters, digits and hyphens")
	}

	client := &models.Client{
		ClientName:   name,
		GCPProjectID: gcpProjectID,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client created", "client", client.ClientName, "project", client.GCPProjectID)
	return client, nil
}

// List returns all clients, newest first
func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	return s.repo.List(ctx)
}

// Get returns one client with its details map
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*ClientWithDetails, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := &ClientWithDetails{Client: *client, Details: make(map[string]string, len(details))}
	for _, d := range details {
		merged.Details[d.FieldName] = d.FieldValue
	}
	return merged, nil
}

// Update validates and rewrites a client's name and project ID
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, name, gcpProjectID string) (*models.Client, error) {
	name = strings.TrimSpace(name)
	gcpProjectID = strings.ToLower(strings.TrimSpace(gcpProjectID))

	if name == "" {
		return nil, apperrors.ValidationError("client name is required")
	}
	if !gcpProjectPattern.MatchString(gcpProjectID) {
		return nil, apperrors.ValidationError("GCP project ID must start with a letter and contain only lowercase letters, digits and hyphens")
	}

	client := &models.Client{
		ID:           id,
		ClientName:   name,
		GCPProjectID: gcpProjectID,
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client and its details
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted", "id", id)
	return nil
}

// GetDetails returns a client's detail fields as a map
func (s *ClientService) GetDetails(ctx context.Context, id uuid.UUID) (map[string]string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(details))
	for _, d := range details {
		fields[d.FieldName] = d.FieldValue
	}
	return fields, nil
}

// SaveDetails upserts each given field for a client
func (s *ClientService) SaveDetails(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	if len(fields) == 0 {
		return apperrors.ValidationError("no detail fields given")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	for name, value := range fields {
		name = strings.TrimSpace(name)
		if name == "" {
			return apperrors.ValidationError("detail field names must not be blank")
		}
		detail := &models.ClientDetail{
			ClientID:   id,
			FieldName:  name,
			FieldValue: value,
		}
		if err := s.repo.UpsertDetail(ctx, detail); err != nil {
			return err
		}
	}
	return nil
}
