package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrSiteNameRequired indicates the site identity is incomplete.
var ErrSiteNameRequired = errors.New("docsite config: site name is required")

// ErrBaseURLInvalid indicates the configured base URL cannot be parsed.
var ErrBaseURLInvalid = errors.New("docsite config: base URL is invalid")

var ErrContentDirRequired = errors.New("docsite config: markdown content directory is required")
var ErrGeneratorOutputDirRequired = errors.New("docsite config: generator output directory is required when generator is enabled")
var ErrSearchCredentialsRequired = errors.New("docsite config: search credentials are required when search is enabled")
var ErrProgressFractionInvalid = errors.New("docsite config: progress minimum fraction must be within [0, 1)")
var ErrProgressEasingInvalid = errors.New("docsite config: progress easing is invalid")
var ErrNavbarLinkInvalid = errors.New("docsite config: navbar links require label and href")
var ErrLoggingProviderRequired = errors.New("docsite config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("docsite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docsite config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the docsite module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Site          SiteConfig
	SEO           SEOConfig
	Social        []SocialLink
	Navbar        []NavbarLink
	Search        SearchConfig
	Progress      ProgressConfig
	Navigation    NavigationConfig
	Markdown      MarkdownConfig
	Generator     GeneratorConfig
	Server        ServerConfig
	Logging       LoggingConfig
	Features      Features
}

// SiteConfig captures the immutable site identity consumed by the chrome
// controller and the head-metadata renderer.
type SiteConfig struct {
	Name     string
	BaseURL  string
	Language string
	Tagline  string
}

// SEOConfig holds the process-wide metadata rendered into every page head.
type SEOConfig struct {
	Description string
	Keywords    []string
	OGImage     string
	OGType      string
	TwitterSite string
	TwitterCard string
}

// SocialLink describes an external profile rendered in the layout footer.
type SocialLink struct {
	Network string
	URL     string
}

// NavbarLink describes a top navigation entry.
type NavbarLink struct {
	Label    string
	Href     string
	External bool
}

// SearchConfig carries the static credentials for the embedded search widget.
// The widget itself is an opaque external service.
type SearchConfig struct {
	Provider    string
	AppID       string
	APIKey      string
	IndexName   string
	Placeholder string
}

// ProgressConfig configures the page-transition progress indicator. The
// spinner is disabled by default; only the bar is shown.
type ProgressConfig struct {
	MinimumFraction float64
	Easing          string
	ShowSpinner     bool
}

// NavigationConfig captures routing configuration for sidebar URL resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	DefaultGroup string
	DefaultRoute string
	SlugParam    string
	LocaleParam  string
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown loading.
type MarkdownConfig struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	LocalePatterns map[string]string
	DefaultLocale  string
	Locales        []string
	Parser         MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled          bool
	OutputDir        string
	CleanBuild       bool
	Incremental      bool
	CopyAssets       bool
	GenerateSitemap  bool
	GenerateRobots   bool
	GenerateFeeds    bool
	Workers          int
	ThemeDir         string
	DefaultTheme     string
	RenderTimeout    time.Duration
	AssetCopyTimeout time.Duration
}

// ServerConfig captures preview server behaviour.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Sidebar bool
	Search  bool
	Feeds   bool
	Logger  bool
}

// DefaultConfig returns opinionated defaults for a documentation site.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Site: SiteConfig{
			Name:     "Documentation",
			Language: "en",
		},
		SEO: SEOConfig{
			OGType:      "website",
			TwitterCard: "summary_large_image",
		},
		Search: SearchConfig{
			Provider:    "algolia",
			Placeholder: "Search",
		},
		Progress: ProgressConfig{
			MinimumFraction: 0.16,
			Easing:          "ease",
			ShowSpinner:     false,
		},
		Navigation: NavigationConfig{},
		Markdown: MarkdownConfig{
			ContentDir:     "content",
			Pattern:        "*.md",
			Recursive:      true,
			LocalePatterns: map[string]string{},
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			CleanBuild:      true,
			Incremental:     false,
			CopyAssets:      true,
			GenerateSitemap: true,
			GenerateRobots:  false,
			GenerateFeeds:   false,
			ThemeDir:        "theme",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Sidebar: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Name) == "" {
		return ErrSiteNameRequired
	}
	if base := strings.TrimSpace(cfg.Site.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrBaseURLInvalid, base)
		}
	}
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
	}
	if cfg.Features.Search {
		if strings.TrimSpace(cfg.Search.AppID) == "" ||
			strings.TrimSpace(cfg.Search.APIKey) == "" ||
			strings.TrimSpace(cfg.Search.IndexName) == "" {
			return ErrSearchCredentialsRequired
		}
	}
	if cfg.Progress.MinimumFraction < 0 || cfg.Progress.MinimumFraction >= 1 {
		return fmt.Errorf("%w: %v", ErrProgressFractionInvalid, cfg.Progress.MinimumFraction)
	}
	if easing := strings.TrimSpace(cfg.Progress.Easing); easing != "" && !isSupportedEasing(easing) {
		return fmt.Errorf("%w: %s", ErrProgressEasingInvalid, easing)
	}
	for _, link := range cfg.Navbar {
		if strings.TrimSpace(link.Label) == "" || strings.TrimSpace(link.Href) == "" {
			return ErrNavbarLinkInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func isSupportedEasing(easing string) bool {
	switch strings.ToLower(strings.TrimSpace(easing)) {
	case "ease", "linear", "ease-in", "ease-out", "ease-in-out":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
