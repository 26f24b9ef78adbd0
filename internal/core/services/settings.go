package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL        = "api.base_url"
	KeyAPITimeout        = "api.timeout_seconds"
	KeyAPIRequestsPerSec = "api.requests_per_second"
	KeyCommentsBackend   = "comments.backend"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:           s.getBaseURL(defaults.API.BaseURL),
			TimeoutSeconds:    s.getInt(KeyAPITimeout, defaults.API.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(KeyAPIRequestsPerSec, defaults.API.RequestsPerSecond),
		},
		Comments: domain.CommentSettings{
			Backend: s.getBackend(defaults.Comments.Backend),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	if err := validateBaseURL(settings.API.BaseURL); err != nil {
		return err
	}
	if !settings.Comments.Backend.IsValid() {
		return fmt.Errorf("invalid comments backend %q: %w", settings.Comments.Backend, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(KeyAPIBaseURL, strings.TrimRight(settings.API.BaseURL, "/")); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(KeyAPITimeout, settings.API.TimeoutSeconds); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if err := s.configStore.Set(KeyAPIRequestsPerSec, settings.API.RequestsPerSecond); err != nil {
		return fmt.Errorf("save api requests_per_second: %w", err)
	}
	if err := s.configStore.Set(KeyCommentsBackend, settings.Comments.Backend.String()); err != nil {
		return fmt.Errorf("save comments backend: %w", err)
	}

	return nil
}

// Set parses and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyAPIBaseURL:
		if err := validateBaseURL(value); err != nil {
			return err
		}
		settings.API.BaseURL = value
	case KeyAPITimeout:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		settings.API.TimeoutSeconds = n
	case KeyAPIRequestsPerSec:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		settings.API.RequestsPerSecond = f
	case KeyCommentsBackend:
		backend := domain.CommentBackend(strings.ToLower(value))
		if !backend.IsValid() {
			return fmt.Errorf("%s must be one of memory, sqlite: %w", key, domain.ErrInvalidInput)
		}
		settings.Comments.Backend = backend
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	return s.Save(settings)
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{KeyAPIBaseURL, KeyAPITimeout, KeyAPIRequestsPerSec, KeyCommentsBackend}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q: %w", KeyAPIBaseURL, raw, domain.ErrInvalidInput)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBaseURL(defaultVal string) string {
	val := s.configStore.GetString(KeyAPIBaseURL)
	if val == "" || validateBaseURL(val) != nil {
		return defaultVal
	}
	return strings.TrimRight(val, "/")
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.CommentBackend) domain.CommentBackend {
	val := s.configStore.GetString(KeyCommentsBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.CommentBackend(strings.ToLower(val))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
