package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocType identifies the kind of linked document
type DocType string

const (
	DocTypeGoogleDoc    DocType = "google_doc"
	DocTypeGoogleSheet  DocType = "google_sheet"
	DocTypeGoogleSlides DocType = "google_slides"
	DocTypeGoogleDrive  DocType = "google_drive"
	DocTypeOther        DocType = "other"
)

// DetectDocType infers the document type from its URL
func DetectDocType(url string) DocType {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "docs.google.com/document"):
		return DocTypeGoogleDoc
	case strings.Contains(lower, "docs.google.com/spreadsheets"):
		return DocTypeGoogleSheet
	case strings.Contains(lower, "docs.google.com/presentation"):
		return DocTypeGoogleSlides
	case strings.Contains(lower, "drive.google.com"):
		return DocTypeGoogleDrive
	default:
		return DocTypeOther
	}
}

// IsValid reports whether the doc type is one of the known kinds
func (d DocType) IsValid() bool {
	switch d {
	case DocTypeGoogleDoc, DocTypeGoogleSheet, DocTypeGoogleSlides, DocTypeGoogleDrive, DocTypeOther:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable name for the doc type
func (d DocType) DisplayName() string {
	switch d {
	case DocTypeGoogleDoc:
		return "Google Doc"
	case DocTypeGoogleSheet:
		return "Google Sheet"
	case DocTypeGoogleSlides:
		return "Google Slides"
	case DocTypeGoogleDrive:
		return "Drive File"
	case DocTypeOther:
		return "Document"
	default:
		return "Document"
	}
}

var docIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// TitleFromURL derives a readable title from a document URL, using the
// embedded document ID when one is present
func TitleFromURL(url string, docType DocType) string {
	if m := docIDPattern.FindStringSubmatch(url); m != nil {
		docID := m[1]
		if len(docID) > 10 {
			docID = docID[:10]
		}
		return docType.DisplayName() + " (" + docID + "...)"
	}
	return docType.DisplayName()
}

// Document is an external document linked from the ops wiki
type Document struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	DocURL    string    `json:"doc_url" db:"doc_url"`
	DocType   DocType   `json:"doc_type" db:"doc_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
