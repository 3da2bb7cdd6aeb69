package ui

import (
	"net/http"
	"strconv"
)

func (a *App) handleWebhookFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	messages, err := a.webhooks.Feed(r.Context(), q.Get("severity"), q.Get("source"), limit)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

func (a *App) handleGetWebhookMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	msg, err := a.webhooks.Get(r.Context(), id)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, msg)
}

// handleWebhookMessageHTML returns one message rendered as an HTML fragment
// for embedding in the feed view
func (a *App) handleWebhookMessageHTML(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	msg, err := a.webhooks.Get(r.Context(), id)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(RenderMessageHTML(msg)))
}

func (a *App) handleDeleteWebhookMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	if err := a.webhooks.Delete(r.Context(), id); err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *App) handleWebhookSources(w http.ResponseWriter, r *http.Request) {
	sources, err := a.webhooks.Sources(r.Context())
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, sources)
}

func (a *App) handleWebhookStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.webhooks.Stats(r.Context())
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
