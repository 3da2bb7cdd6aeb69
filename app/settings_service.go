package app

import (
	"context"
	"strings"

	"prism/ports"

	apperrors "prism/internal/errors"
)

// Theme values accepted for the theme setting
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// SettingsService is the explicit home for dashboard settings; nothing else
// in the process holds mutable global state.
type SettingsService struct {
	repo ports.SettingsRepository
}

// NewSettingsService creates a settings service
func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns one setting's value
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", apperrors.ValidationError("setting key is required")
	}
	return s.repo.Get(ctx, key)
}

// Set validates and stores one setting. The theme key only accepts the
// known theme values.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperrors.ValidationError("setting key is required")
	}

	if key == "theme" && value != ThemeLight && value != ThemeDark {
		return apperrors.ValidationError("theme must be light or dark")
	}
	return s.repo.Set(ctx, key, value)
}

// All returns every stored setting
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	return s.repo.All(ctx)
}
