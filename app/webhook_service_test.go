package app

import (
	"context"
	"testing"

	"prism/models"
	"prism/ports"

	apperrors "prism/internal/errors"
	"prism/internal/metrics"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) Insert(ctx context.Context, msg *models.WebhookMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockWebhookRepository) List(ctx context.Context, filter ports.WebhookFilter) ([]*models.WebhookMessage, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.WebhookMessage), args.Error(1)
}

func (m *MockWebhookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WebhookMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WebhookMessage), args.Error(1)
}

func (m *MockWebhookRepository) Stats(ctx context.Context) (*models.WebhookStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*models.WebhookStats), args.Error(1)
}

func (m *MockWebhookRepository) Sources(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockWebhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testSecret = "test-secret"

func newWebhookService(repo *MockWebhookRepository) *WebhookService {
	return NewWebhookService(repo, testSecret, metrics.New(), testLogger())
}

func TestWebhookService_Receive(t *testing.T) {
	repo := &MockWebhookRepository{}
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.WebhookMessage")).Return(nil)

	service := newWebhookService(repo)
	msg, err := service.Receive(context.Background(), WebhookReceiveRequest{
		Secret:   testSecret,
		Source:   "scanner",
		Severity: "CRITICAL",
		Type:     "table",
		Title:    "Port scan summary",
		Content:  "3 open ports",
		Data:     map[string]interface{}{"columns": []interface{}{"port"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "scanner", msg.Source)
	assert.Equal(t, models.SeverityCritical, msg.Severity)
	assert.Equal(t, models.MessageTypeTable, msg.MessageType)
	repo.AssertCalled(t, "Insert", mock.Anything, mock.AnythingOfType("*models.WebhookMessage"))
}

func TestWebhookService_Receive_WrongSecret(t *testing.T) {
	repo := &MockWebhookRepository{}
	service := newWebhookService(repo)

	_, err := service.Receive(context.Background(), WebhookReceiveRequest{
		Secret:  "wrong",
		Content: "should never land",
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.GetCode(err))
	assert.Equal(t, "Invalid secret", err.Error())
	// No row reaches storage on auth failure
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestWebhookService_Receive_Defaults(t *testing.T) {
	repo := &MockWebhookRepository{}
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*models.WebhookMessage")).Return(nil)

	service := newWebhookService(repo)
	msg, err := service.Receive(context.Background(), WebhookReceiveRequest{
		Secret:   testSecret,
		Severity: "catastrophic",
		Type:     "spreadsheet",
		Content:  "minimal post",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Unknown", msg.Source)
	assert.Equal(t, models.SeverityInfo, msg.Severity)
	assert.Equal(t, models.MessageTypeText, msg.MessageType)
}

func TestWebhookService_Feed_ClampsLimit(t *testing.T) {
	repo := &MockWebhookRepository{}
	repo.On("List", mock.Anything, ports.WebhookFilter{Severity: "critical", Limit: 100}).
		Return([]*models.WebhookMessage{}, nil)

	service := newWebhookService(repo)

	// Zero and oversized limits both clamp to the maximum; severity is
	// lowercased before filtering
	_, err := service.Feed(context.Background(), " Critical ", "", 0)
	assert.NoError(t, err)
	_, err = service.Feed(context.Background(), "critical", "", 500)
	assert.NoError(t, err)

	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestWebhookService_Stats(t *testing.T) {
	repo := &MockWebhookRepository{}
	repo.On("Stats", mock.Anything).Return(&models.WebhookStats{
		TotalMessages: 7,
		BySeverity:    map[string]int64{"info": 4, "critical": 3},
	}, nil)

	service := newWebhookService(repo)
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalMessages)
	assert.Equal(t, int64(3), stats.BySeverity["critical"])
}
