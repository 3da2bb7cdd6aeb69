package ui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"prism/app"
	"prism/internal/metrics"

	charmlog "github.com/charmbracelet/log"
)

// App is the dashboard API: the JSON surface the SecOps frontend talks to.
// The webhook receiver runs as a separate listener, see WebhookServer.
type App struct {
	router    *chi.Mux
	exports   *app.ExportService
	clients   *app.ClientService
	documents *app.DocumentService
	settings  *app.SettingsService
	webhooks  *app.WebhookService
	metrics   *metrics.Metrics
	logger    *charmlog.Logger
}

// Deps carries the services the dashboard exposes
type Deps struct {
	Exports   *app.ExportService
	Clients   *app.ClientService
	Documents *app.DocumentService
	Settings  *app.SettingsService
	Webhooks  *app.WebhookService
	Metrics   *metrics.Metrics
	Logger    *charmlog.Logger
}

// NewApp creates the dashboard application
func NewApp(deps Deps) *App {
	a := &App{
		router:    chi.NewRouter(),
		exports:   deps.Exports,
		clients:   deps.Clients,
		documents: deps.Documents,
		settings:  deps.Settings,
		webhooks:  deps.Webhooks,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(a.observeRequests)
}

// observeRequests records per-route request durations using the matched
// chi pattern so path parameters don't explode the label space
func (a *App) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		a.metrics.ObserveRequest(route, time.Since(start).Seconds())
	})
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/exports/process", a.handleProcessExport)
		r.Post("/exports/preview", a.handlePreviewExport)

		r.Get("/clients", a.handleListClients)
		r.Post("/clients", a.handleCreateClient)
		r.Get("/clients/{id}", a.handleGetClient)
		r.Put("/clients/{id}", a.handleUpdateClient)
		r.Delete("/clients/{id}", a.handleDeleteClient)
		r.Get("/clients/{id}/details", a.handleGetClientDetails)
		r.Put("/clients/{id}/details", a.handleSaveClientDetails)

		r.Get("/documents", a.handleListDocuments)
		r.Post("/documents", a.handleCreateDocument)
		r.Delete("/documents/{id}", a.handleDeleteDocument)

		r.Get("/settings", a.handleAllSettings)
		r.Get("/settings/{key}", a.handleGetSetting)
		r.Put("/settings/{key}", a.handleSetSetting)

		r.Get("/webhook/messages", a.handleWebhookFeed)
		r.Get("/webhook/messages/{id}", a.handleGetWebhookMessage)
		r.Get("/webhook/messages/{id}/html", a.handleWebhookMessageHTML)
		r.Delete("/webhook/messages/{id}", a.handleDeleteWebhookMessage)
		r.Get("/webhook/sources", a.handleWebhookSources)
		r.Get("/webhook/stats", a.handleWebhookStats)
	})

	a.router.Get("/health", a.handleHealth)
	a.router.Method(http.MethodGet, "/metrics", a.metrics.Handler())
}

// Router exposes the configured mux, mainly for tests
func (a *App) Router() *chi.Mux {
	return a.router
}

// Start runs the dashboard listener until the process exits
func (a *App) Start(port string) error {
	a.logger.Info("dashboard listening", "port", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "prism-dashboard",
	})
}
