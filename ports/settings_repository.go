package ports

import (
	"context"
)

// SettingsRepository defines the interface for key-value settings storage
type SettingsRepository interface {
	// Get returns the value for a key, or a not-found error
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces a key's value
	Set(ctx context.Context, key, value string) error

	// All returns every stored setting
	All(ctx context.Context) (map[string]string, error)
}
