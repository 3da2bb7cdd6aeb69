package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JSONBMap is a custom type for PostgreSQL JSONB columns that maps to map[string]interface{}
type JSONBMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONBMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONBMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(JSONBMap)
		return nil
	}

	if len(bytes) == 0 {
		*j = make(JSONBMap)
		return nil
	}

	result := make(JSONBMap)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// Severity classifies a webhook message by urgency
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// ParseSeverity lowercases the input and coerces unknown values to info
func ParseSeverity(s string) Severity {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if sev.IsValid() {
		return sev
	}
	return SeverityInfo
}

// IsValid reports whether the severity is one of the known levels
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	default:
		return false
	}
}

// Rank orders severities for sorting: info < warning < error < critical
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 0
	default:
		return 0
	}
}

// MessageType describes the payload shape of a webhook message
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeTable MessageType = "table"
	MessageTypeList  MessageType = "list"
	MessageTypeCode  MessageType = "code"
	MessageTypeJSON  MessageType = "json"
)

// ParseMessageType lowercases the input and coerces unknown values to text
func ParseMessageType(s string) MessageType {
	mt := MessageType(strings.ToLower(strings.TrimSpace(s)))
	if mt.IsValid() {
		return mt
	}
	return MessageTypeText
}

// IsValid reports whether the message type is one of the known shapes
func (m MessageType) IsValid() bool {
	switch m {
	case MessageTypeText, MessageTypeTable, MessageTypeList, MessageTypeCode, MessageTypeJSON:
		return true
	default:
		return false
	}
}

// WebhookMessage is one notification received on the webhook endpoint
type WebhookMessage struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Source      string      `json:"source" db:"source"`
	Severity    Severity    `json:"severity" db:"severity"`
	MessageType MessageType `json:"message_type" db:"message_type"`
	Title       string      `json:"title" db:"title"`
	Content     string      `json:"content" db:"content"`
	Payload     JSONBMap    `json:"payload" db:"payload"`
	ReceivedAt  time.Time   `json:"received_at" db:"received_at"`
}

// WebhookStats summarizes received messages for the stats endpoint
type WebhookStats struct {
	TotalMessages int64            `json:"total_messages"`
	BySeverity    map[string]int64 `json:"by_severity"`
}
