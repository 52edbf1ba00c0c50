package bootstrap

import (
	"context"
	"fmt"
	"strings"

	docsite "github.com/goliatone/go-docsite"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Options captures configuration shared by the docsite CLIs.
type Options struct {
	SiteName       string
	BaseURL        string
	ContentDir     string
	Pattern        string
	Recursive      bool
	DefaultLocale  string
	Locales        []string
	OutputDir      string
	ThemeDir       string
	Incremental    bool
	Feeds          bool
	ServerAddr     string
	LoggerProvider interfaces.LoggerProvider
	DIOptions      []di.Option
}

// Module wraps the docsite module plus the logger the CLIs report with.
type Module struct {
	Module *docsite.Module
	Logger interfaces.Logger
}

// BuildModule constructs a docsite module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := docsite.DefaultConfig()
	cfg.Generator.Enabled = true
	cfg.Features.Logger = true
	cfg.Features.Feeds = opts.Feeds
	cfg.Generator.GenerateFeeds = opts.Feeds
	cfg.Generator.Incremental = opts.Incremental

	if trimmed := strings.TrimSpace(opts.SiteName); trimmed != "" {
		cfg.Site.Name = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Site.BaseURL = trimmed
	}
	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	if trimmed := strings.TrimSpace(opts.DefaultLocale); trimmed != "" {
		cfg.DefaultLocale = trimmed
		cfg.Markdown.DefaultLocale = trimmed
	}
	if len(opts.Locales) > 0 {
		cfg.Markdown.Locales = append([]string(nil), opts.Locales...)
	}

	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.ThemeDir); trimmed != "" {
		cfg.Generator.ThemeDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.ServerAddr); trimmed != "" {
		cfg.Server.Addr = trimmed
	}

	diOpts := append([]di.Option{}, opts.DIOptions...)
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docsite.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docsite module: %w", err)
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "docsite.cli")

	return &Module{
		Module: module,
		Logger: logger,
	}, nil
}

// SyncContent loads the configured content directory into the page registry.
func (m *Module) SyncContent(ctx context.Context, drafts bool) error {
	docs, err := m.Module.Markdown()
	if err != nil {
		return fmt.Errorf("markdown service: %w", err)
	}

	handler := sitecmd.NewSyncContentHandler(docs, m.Module.Pages(), m.Logger)
	return handler.Execute(ctx, sitecmd.SyncContentCommand{
		Dir:       ".",
		Recursive: m.Module.Container().Config.Markdown.Recursive,
		Drafts:    drafts,
	})
}

// SplitLocales parses a comma separated locale list into a trimmed slice.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	return locales
}
