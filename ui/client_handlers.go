package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "prism/internal/errors"
)

// clientRequest is the POST/PUT body for clients
type clientRequest struct {
	ClientName   string `json:"client_name"`
	GCPProjectID string `json:"gcp_project_id"`
}

// pathID parses the {id} route parameter as a UUID
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid ID in URL")
	}
	return id, nil
}

func (a *App) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := a.clients.List(r.Context())
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (a *App) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, a.logger, apperrors.ValidationError("invalid JSON body"))
		return
	}

	client, err := a.clients.Create(r.Context(), req.ClientName, req.GCPProjectID)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (a *App) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	client, err := a.clients.Get(r.Context(), id)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (a *App) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, a.logger, apperrors.ValidationError("invalid JSON body"))
		return
	}

	client, err := a.clients.Update(r.Context(), id, req.ClientName, req.GCPProjectID)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (a *App) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	if err := a.clients.Delete(r.Context(), id); err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *App) handleGetClientDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	details, err := a.clients.GetDetails(r.Context(), id)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (a *App) handleSaveClientDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, a.logger, apperrors.ValidationError("invalid JSON body"))
		return
	}

	if err := a.clients.SaveDetails(r.Context(), id, fields); err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
