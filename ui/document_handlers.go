package ui

import (
	"encoding/json"
	"net/http"

	apperrors "prism/internal/errors"
)

// documentRequest is the POST body for document links
type documentRequest struct {
	DocURL string `json:"doc_url"`
	Title  string `json:"title"`
}

func (a *App) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := a.documents.List(r.Context())
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

func (a *App) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, a.logger, apperrors.ValidationError("invalid JSON body"))
		return
	}

	doc, err := a.documents.Create(r.Context(), req.DocURL, req.Title)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

func (a *App) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	if err := a.documents.Delete(r.Context(), id); err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
