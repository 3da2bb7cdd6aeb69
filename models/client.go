package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a managed client and its GCP project binding
type Client struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ClientName   string    `json:"client_name" db:"client_name"`
	GCPProjectID string    `json:"gcp_project_id" db:"gcp_project_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ClientDetail is one free-form field attached to a client
type ClientDetail struct {
	ClientID   uuid.UUID `json:"client_id" db:"client_id"`
	FieldName  string    `json:"field_name" db:"field_name"`
	FieldValue string    `json:"field_value" db:"field_value"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Conventional client detail field names used by the dashboard forms.
const (
	DetailContactName  = "contact_name"
	DetailContactEmail = "contact_email"
	DetailOrgID        = "org_id"
	DetailNotes        = "notes"
)
