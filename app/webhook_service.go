package app

import (
	"context"
	"strings"

	"prism/models"
	"prism/ports"

	apperrors "prism/internal/errors"
	"prism/internal/metrics"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// WebhookReceiveRequest is the POST body accepted by the receiver
type WebhookReceiveRequest struct {
	Secret   string                 `json:"secret"`
	Source   string                 `json:"source"`
	Severity string                 `json:"severity"`
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Content  string                 `json:"content"`
	Data     map[string]interface{} `json:"data"`
}

// WebhookService authenticates, normalizes and stores incoming messages and
// serves the dashboard's message feed
type WebhookService struct {
	repo    ports.WebhookRepository
	secret  string
	metrics *metrics.Metrics
	logger  *log.Logger
}

// NewWebhookService creates a webhook service
func NewWebhookService(repo ports.WebhookRepository, secret string, m *metrics.Metrics, logger *log.Logger) *WebhookService {
	return &WebhookService{repo: repo, secret: secret, metrics: m, logger: logger}
}

// Receive checks the shared secret and stores the message. Missing source
// falls back to Unknown; unknown severities and types are coerced to their
// defaults rather than rejected, so lenient senders still land in the feed.
func (s *WebhookService) Receive(ctx context.Context, req WebhookReceiveRequest) (*models.WebhookMessage, error) {
	if req.Secret != s.secret {
		s.metrics.WebhookRejected(string(models.ParseSeverity(req.Severity)))
		return nil, apperrors.Unauthorized("Invalid secret")
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "Unknown"
	}

	msg := &models.WebhookMessage{
		Source:      source,
		Severity:    models.ParseSeverity(req.Severity),
		MessageType: models.ParseMessageType(req.Type),
		Title:       req.Title,
		Content:     req.Content,
		Payload:     models.JSONBMap(req.Data),
	}

	if err := s.repo.Insert(ctx, msg); err != nil {
		s.metrics.WebhookRejected(string(msg.Severity))
		return nil, apperrors.WithCode(apperrors.CodeDatabaseError,
			apperrors.Wrap(err, "failed to store webhook message"))
	}

	s.metrics.WebhookAccepted(string(msg.Severity))
	s.logger.Info("webhook received", "source", msg.Source, "severity", msg.Severity, "type", msg.MessageType)
	return msg, nil
}

// maxFeedLimit caps the dashboard feed page size
const maxFeedLimit = 100

// Feed returns messages newest first. The severity filter is lowercased;
// limits are clamped to the feed maximum.
func (s *WebhookService) Feed(ctx context.Context, severity, source string, limit int) ([]*models.WebhookMessage, error) {
	if limit <= 0 || limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	filter := ports.WebhookFilter{
		Severity: strings.ToLower(strings.TrimSpace(severity)),
		Source:   strings.TrimSpace(source),
		Limit:    limit,
	}
	return s.repo.List(ctx, filter)
}

// Get returns one message
func (s *WebhookService) Get(ctx context.Context, id uuid.UUID) (*models.WebhookMessage, error) {
	return s.repo.GetByID(ctx, id)
}

// Stats returns the total count and per-severity breakdown
func (s *WebhookService) Stats(ctx context.Context) (*models.WebhookStats, error) {
	return s.repo.Stats(ctx)
}

// Sources returns the distinct senders seen so far
func (s *WebhookService) Sources(ctx context.Context) ([]string, error) {
	return s.repo.Sources(ctx)
}

// Delete removes one message from the feed
func (s *WebhookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
