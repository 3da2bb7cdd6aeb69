package ui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prism/app"

	apperrors "prism/internal/errors"

	charmlog "github.com/charmbracelet/log"
)

// WebhookServer is the receiver automated workflows POST notifications to.
// It runs on its own port so the dashboard API can be firewalled separately
// from the endpoint exposed to workflow runners.
type WebhookServer struct {
	engine  *gin.Engine
	service *app.WebhookService
	logger  *charmlog.Logger
}

// NewWebhookServer creates the webhook receiver
func NewWebhookServer(mode string, service *app.WebhookService, logger *charmlog.Logger) *WebhookServer {
	if mode != "" {
		gin.SetMode(mode)
	}

	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("webhook handler panicked", "panic", recovered)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	s := &WebhookServer{engine: engine, service: service, logger: logger}
	s.setupRoutes()
	return s
}

func (s *WebhookServer) setupRoutes() {
	s.engine.POST("/webhook/receive", s.handleReceive)
	s.engine.GET("/webhook/stats", s.handleStats)
	s.engine.GET("/health", s.handleHealth)
}

// Engine exposes the configured engine, mainly for tests
func (s *WebhookServer) Engine() *gin.Engine {
	return s.engine
}

// Start runs the receiver until the process exits
func (s *WebhookServer) Start(port string) error {
	s.logger.Info("webhook receiver listening", "port", port)
	return s.engine.Run(":" + port)
}

func (s *WebhookServer) handleReceive(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
		return
	}

	var req app.WebhookReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	msg, err := s.service.Receive(c.Request.Context(), req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Message})
			return
		}
		s.logger.Error("webhook store failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Webhook received",
		"id":      msg.ID,
	})
}

func (s *WebhookServer) handleStats(c *gin.Context) {
	stats, err := s.service.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("webhook stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *WebhookServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "prism-webhook",
	})
}
