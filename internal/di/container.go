package di

import (
	"strings"
	"time"

	"github.com/goliatone/go-docsite/internal/chrome"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
	registry "github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/logging/console"
	"github.com/goliatone/go-docsite/internal/logging/gologger"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/internal/search"
	"github.com/goliatone/go-docsite/internal/seo"
	"github.com/goliatone/go-docsite/internal/server"
	"github.com/goliatone/go-docsite/internal/sidebar"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
)

// Container wires module dependencies from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	template       interfaces.TemplateRenderer
	storage        interfaces.ArtifactStorage
	clock          func() time.Time

	routeManager    *urlkit.RouteManager
	sidebarResolver sidebar.URLResolver

	pagesSvc    registry.Service
	markdownSvc interfaces.MarkdownService
	sidebarSvc  sidebar.Service
	seoBuilder  *seo.Builder
	searchSvc   *search.Service
	themes      *generator.ThemeSelector
	generator   generator.Service

	markdownErr error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithTemplateRenderer overrides the default theme-directory renderer.
func WithTemplateRenderer(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = tr
	}
}

// WithArtifactStorage overrides the filesystem artifact storage.
func WithArtifactStorage(storage interfaces.ArtifactStorage) Option {
	return func(c *Container) {
		c.storage = storage
	}
}

// WithClock overrides the time source used by registered services.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.clock = now
	}
}

// WithPageService overrides the default page registry binding.
func WithPageService(svc registry.Service) Option {
	return func(c *Container) {
		c.pagesSvc = svc
	}
}

// WithMarkdownService overrides the default filesystem-backed markdown service.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithSidebarService overrides the default sidebar service binding.
func WithSidebarService(svc sidebar.Service) Option {
	return func(c *Container) {
		c.sidebarSvc = svc
	}
}

// WithSidebarResolver overrides the URL resolver used for sidebar items.
func WithSidebarResolver(resolver sidebar.URLResolver) Option {
	return func(c *Container) {
		c.sidebarResolver = resolver
	}
}

// WithGeneratorService overrides the default generator binding.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generator = svc
	}
}

// WithSearchService overrides the default search widget binding.
func WithSearchService(svc *search.Service) Option {
	return func(c *Container) {
		c.searchSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	c := &Container{
		Config: cfg,
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureNavigation()
	c.configureServices()

	return c
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
			return
		}
		c.loggerProvider = console.NewProvider(console.Options{})
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
}

func (c *Container) configureNavigation() {
	if c.sidebarResolver != nil {
		return
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(navCfg.RouteConfig)
	c.routeManager = manager

	c.sidebarResolver = sidebar.NewURLKitResolver(sidebar.URLKitResolverOptions{
		Manager:      manager,
		DefaultGroup: strings.TrimSpace(navCfg.URLKit.DefaultGroup),
		DefaultRoute: strings.TrimSpace(navCfg.URLKit.DefaultRoute),
		SlugParam:    strings.TrimSpace(navCfg.URLKit.SlugParam),
		LocaleParam:  strings.TrimSpace(navCfg.URLKit.LocaleParam),
	})
}

func (c *Container) configureServices() {
	if c.pagesSvc == nil {
		c.pagesSvc = registry.NewService(registry.WithClock(c.clock))
	}

	if c.markdownSvc == nil {
		svc, err := markdown.NewService(markdownConfig(c.Config), nil)
		if err != nil {
			c.markdownErr = err
		} else {
			c.markdownSvc = svc
		}
	}

	if c.sidebarSvc == nil {
		sidebarOpts := []sidebar.ServiceOption{}
		if c.sidebarResolver != nil {
			sidebarOpts = append(sidebarOpts, sidebar.WithURLResolver(c.sidebarResolver))
		}
		svc, err := sidebar.NewService(c.pagesSvc, sidebarOpts...)
		if err == nil {
			c.sidebarSvc = svc
		}
	}

	if c.seoBuilder == nil {
		c.seoBuilder = seo.NewBuilder(c.Config.Site, c.Config.SEO)
	}

	if c.searchSvc == nil {
		c.searchSvc = search.NewService(c.Config.Search, c.Config.Features.Search)
	}

	if c.themes == nil && strings.TrimSpace(c.Config.Generator.ThemeDir) != "" {
		c.themes = generator.NewThemeSelector(generator.ThemingConfig{
			ThemeDir:     c.Config.Generator.ThemeDir,
			DefaultTheme: c.Config.Generator.DefaultTheme,
		}, nil)
	}

	if c.generator == nil {
		if !c.Config.Generator.Enabled {
			c.generator = generator.NewDisabledService()
			return
		}

		if c.storage == nil {
			c.storage = generator.NewFilesystemStorage(".")
		}
		if c.template == nil {
			if renderer, err := generator.NewTemplateRenderer(c.Config.Generator.ThemeDir); err == nil {
				c.template = renderer
			}
		}

		c.generator = generator.NewService(generator.Config{
			OutputDir:        c.Config.Generator.OutputDir,
			BaseURL:          c.Config.Site.BaseURL,
			CleanBuild:       c.Config.Generator.CleanBuild,
			Incremental:      c.Config.Generator.Incremental,
			CopyAssets:       c.Config.Generator.CopyAssets,
			GenerateSitemap:  c.Config.Generator.GenerateSitemap,
			GenerateRobots:   c.Config.Generator.GenerateRobots,
			GenerateFeeds:    c.Config.Generator.GenerateFeeds && c.Config.Features.Feeds,
			Workers:          c.Config.Generator.Workers,
			DefaultLocale:    c.Config.DefaultLocale,
			SiteIdentity:     c.siteIdentity(),
			RenderTimeout:    c.Config.Generator.RenderTimeout,
			AssetCopyTimeout: c.Config.Generator.AssetCopyTimeout,
		}, generator.Dependencies{
			Registry: c.pagesSvc,
			Sidebar:  c.sidebarService(),
			SEO:      c.seoBuilder,
			Search:   c.searchSvc,
			Themes:   c.themes,
			Renderer: c.template,
			Storage:  c.storage,
			Logger:   logging.GeneratorLogger(c.loggerProvider),
		})
	}
}

func (c *Container) siteIdentity() generator.SiteConfig {
	return generator.SiteConfig{
		Site:     c.Config.Site,
		Social:   append([]runtimeconfig.SocialLink(nil), c.Config.Social...),
		Navbar:   append([]runtimeconfig.NavbarLink(nil), c.Config.Navbar...),
		Progress: c.progressOptions(),
	}
}

func (c *Container) progressOptions() interfaces.ProgressOptions {
	return interfaces.ProgressOptions{
		MinimumFraction: c.Config.Progress.MinimumFraction,
		Easing:          c.Config.Progress.Easing,
		ShowSpinner:     c.Config.Progress.ShowSpinner,
	}
}

func (c *Container) sidebarService() sidebar.Service {
	if !c.Config.Features.Sidebar {
		return nil
	}
	return c.sidebarSvc
}

// LoggerProvider exposes the configured logger provider (nil when logging is disabled).
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// PageService returns the configured page registry.
func (c *Container) PageService() registry.Service {
	return c.pagesSvc
}

// MarkdownService returns the filesystem-backed markdown loader.
func (c *Container) MarkdownService() (interfaces.MarkdownService, error) {
	if c.markdownErr != nil {
		return nil, c.markdownErr
	}
	return c.markdownSvc, nil
}

// SidebarService returns the sidebar builder, or nil when the feature is off.
func (c *Container) SidebarService() sidebar.Service {
	return c.sidebarService()
}

// SEOBuilder returns the head-metadata builder.
func (c *Container) SEOBuilder() *seo.Builder {
	return c.seoBuilder
}

// SearchService returns the search widget service.
func (c *Container) SearchService() *search.Service {
	return c.searchSvc
}

// GeneratorService returns the static site generator.
func (c *Container) GeneratorService() generator.Service {
	return c.generator
}

// ThemeSelector returns the theme manifest selector, nil when no theme
// directory is configured.
func (c *Container) ThemeSelector() *generator.ThemeSelector {
	return c.themes
}

// TemplateRenderer exposes the configured template renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

// ArtifactStorage exposes the configured artifact storage.
func (c *Container) ArtifactStorage() interfaces.ArtifactStorage {
	return c.storage
}

// ChromeController builds a chrome controller bound to the host-supplied
// progress indicator and title applier.
func (c *Container) ChromeController(indicator interfaces.ProgressIndicator, titles interfaces.TitleApplier) (*chrome.Controller, error) {
	return chrome.NewController(chrome.Config{
		SiteName: c.Config.Site.Name,
		Progress: c.progressOptions(),
	}, indicator, titles, chrome.WithLogger(logging.ChromeLogger(c.loggerProvider)))
}

// FeatureGates returns the runtime switches consumed by command handlers.
func (c *Container) FeatureGates() sitecmd.FeatureGates {
	return sitecmd.FeatureGates{
		GeneratorEnabled: func() bool {
			return c.Config.Enabled && c.Config.Generator.Enabled
		},
	}
}

// PreviewServer wires an HTTP preview server over the configured services.
func (c *Container) PreviewServer() (*server.Server, error) {
	return server.New(server.Config{
		Addr:            c.Config.Server.Addr,
		ReadTimeout:     c.Config.Server.ReadTimeout,
		WriteTimeout:    c.Config.Server.WriteTimeout,
		ShutdownTimeout: c.Config.Server.ShutdownTimeout,
		DefaultLocale:   c.Config.DefaultLocale,
		AssetsDir:       c.Config.Generator.ThemeDir,
		SiteName:        c.Config.Site.Name,
		Progress:        c.progressOptions(),
	}, server.Dependencies{
		Generator: c.generator,
		Registry:  c.pagesSvc,
		Search:    c.searchSvc,
		Logger:    logging.ServerLogger(c.loggerProvider),
	})
}

func markdownConfig(cfg runtimeconfig.Config) markdown.Config {
	md := cfg.Markdown

	defaultLocale := strings.TrimSpace(md.DefaultLocale)
	if defaultLocale == "" {
		defaultLocale = cfg.DefaultLocale
	}

	return markdown.Config{
		BasePath:       md.ContentDir,
		DefaultLocale:  defaultLocale,
		Locales:        append([]string(nil), md.Locales...),
		LocalePatterns: md.LocalePatterns,
		Pattern:        md.Pattern,
		Recursive:      md.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: append([]string(nil), md.Parser.Extensions...),
			Sanitize:   md.Parser.Sanitize,
			HardWraps:  md.Parser.HardWraps,
			SafeMode:   md.Parser.SafeMode,
		},
	}
}
