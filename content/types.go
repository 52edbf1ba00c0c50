package content

import (
	"context"
	"time"

	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/google/uuid"
)

// Page is the canonical record for a rendered documentation page.
type Page struct {
	ID           uuid.UUID           `json:"id"`
	Route        string              `json:"route"`
	Slug         string              `json:"slug"`
	Locale       string              `json:"locale"`
	Meta         interfaces.PageMeta `json:"meta"`
	Category     string              `json:"category,omitempty"`
	Weight       int                 `json:"weight"`
	Tags         []string            `json:"tags,omitempty"`
	Draft        bool                `json:"draft"`
	HTML         string              `json:"html"`
	SourcePath   string              `json:"source_path"`
	LastModified time.Time           `json:"last_modified"`
	Checksum     string              `json:"checksum"`
}

// RegisterPageRequest registers a parsed document under a route.
type RegisterPageRequest struct {
	Document     interfaces.Document
	HTML         string
	RouteDefault string
}

// ListOptions filters page listings.
type ListOptions struct {
	Locale        string
	Category      string
	IncludeDrafts bool
}

// Registry exposes documentation page lookup use cases.
type Registry interface {
	Register(ctx context.Context, req RegisterPageRequest) (*Page, error)
	GetByRoute(ctx context.Context, route string, locale string) (*Page, error)
	List(ctx context.Context, opts ListOptions) ([]*Page, error)
	Categories(ctx context.Context, locale string) ([]string, error)
	Locales(ctx context.Context) ([]string, error)
	Reset(ctx context.Context) error
}
