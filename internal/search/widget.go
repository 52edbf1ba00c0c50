package search

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-docsite/internal/runtimeconfig"
)

// ErrWidgetDisabled is returned when embedding is requested with search off.
var ErrWidgetDisabled = errors.New("search: widget is disabled")

// WidgetConfig is the client bootstrap payload for the hosted search widget.
// Credentials are the search-only kind the provider intends for browsers.
type WidgetConfig struct {
	Provider    string `json:"provider"`
	AppID       string `json:"app_id"`
	APIKey      string `json:"api_key"`
	IndexName   string `json:"index_name"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Validate ensures the widget carries complete credentials.
func (c WidgetConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.Required),
		validation.Field(&c.AppID, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.IndexName, validation.Required),
	)
}

// Service exposes the search widget bootstrap.
type Service struct {
	enabled bool
	widget  WidgetConfig
}

// NewService builds the search service from runtime configuration.
func NewService(cfg runtimeconfig.SearchConfig, enabled bool) *Service {
	return &Service{
		enabled: enabled,
		widget: WidgetConfig{
			Provider:    cfg.Provider,
			AppID:       cfg.AppID,
			APIKey:      cfg.APIKey,
			IndexName:   cfg.IndexName,
			Placeholder: cfg.Placeholder,
		},
	}
}

// Enabled reports whether the widget should render.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Widget returns the bootstrap payload after validating it.
func (s *Service) Widget() (WidgetConfig, error) {
	if !s.enabled {
		return WidgetConfig{}, ErrWidgetDisabled
	}
	if err := s.widget.Validate(); err != nil {
		return WidgetConfig{}, err
	}
	return s.widget, nil
}

// Embed serializes the widget bootstrap to JSON for template injection.
func (s *Service) Embed() (string, error) {
	widget, err := s.Widget()
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(widget)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
