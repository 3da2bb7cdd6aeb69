package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "prism/internal/errors"
)

// settingRequest is the PUT body for a setting
type settingRequest struct {
	Value string `json:"value"`
}

func (a *App) handleAllSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settings.All(r.Context())
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (a *App) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := a.settings.Get(r.Context(), key)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

func (a *App) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req settingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, a.logger, apperrors.ValidationError("invalid JSON body"))
		return
	}

	if err := a.settings.Set(r.Context(), key, req.Value); err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}
