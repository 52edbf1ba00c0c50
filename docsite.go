package docsite

import (
	"github.com/goliatone/go-docsite/content"
	"github.com/goliatone/go-docsite/internal/chrome"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
	registry "github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/search"
	"github.com/goliatone/go-docsite/internal/seo"
	"github.com/goliatone/go-docsite/internal/server"
	"github.com/goliatone/go-docsite/internal/sidebar"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// PageService exports the page registry contract for consumers of the docsite package.
type PageService = registry.Service

// Page exports the canonical page record.
type Page = content.Page

// RegisterPageRequest exports the page registration payload.
type RegisterPageRequest = content.RegisterPageRequest

// ListOptions exports the page listing filters.
type ListOptions = content.ListOptions

// SidebarService exports the sidebar builder contract.
type SidebarService = sidebar.Service

// SidebarTree exports the grouped sidebar structure.
type SidebarTree = sidebar.Tree

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports the generator build filters.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build report.
type BuildResult = generator.BuildResult

// SearchService exports the search widget service.
type SearchService = *search.Service

// SEOBuilder exports the head-metadata builder.
type SEOBuilder = *seo.Builder

// ChromeController exports the page chrome controller.
type ChromeController = chrome.Controller

// ChromeSnapshot exports the chrome observation payload.
type ChromeSnapshot = chrome.Snapshot

// PreviewServer exports the local preview HTTP server.
type PreviewServer = server.Server

// Module represents the top level docsite runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a docsite module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page registry.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Markdown returns the markdown service when the content directory exists.
func (m *Module) Markdown() (interfaces.MarkdownService, error) {
	return m.container.MarkdownService()
}

// Sidebar returns the sidebar builder, nil when the feature is disabled.
func (m *Module) Sidebar() SidebarService {
	return m.container.SidebarService()
}

// SEO returns the head-metadata builder.
func (m *Module) SEO() SEOBuilder {
	return m.container.SEOBuilder()
}

// Search returns the search widget service.
func (m *Module) Search() SearchService {
	return m.container.SearchService()
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Chrome builds a chrome controller bound to the host-supplied progress
// indicator and title applier.
func (m *Module) Chrome(indicator interfaces.ProgressIndicator, titles interfaces.TitleApplier) (*ChromeController, error) {
	return m.container.ChromeController(indicator, titles)
}

// FeatureGates returns the runtime switches consumed by command handlers.
func (m *Module) FeatureGates() sitecmd.FeatureGates {
	return m.container.FeatureGates()
}

// Server wires a preview server over the configured services.
func (m *Module) Server() (*PreviewServer, error) {
	return m.container.PreviewServer()
}
