package sitecmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	publiccontent "github.com/goliatone/go-docsite/content"
	"github.com/goliatone/go-docsite/internal/commands"
	registry "github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// BuildSiteHandler orchestrates generator builds using the shared command
// handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}

		result, err := service.Build(ctx, generator.BuildOptions{
			Locales:       normalizeLocales(msg.Locales),
			Routes:        append([]string(nil), msg.Routes...),
			DryRun:        msg.DryRun,
			IncludeDrafts: msg.Drafts,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result:   result,
			Metadata: map[string]any{"operation": "build"},
		})
		return err
	}

	options := append([]commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
	}, opts...)

	return &BuildSiteHandler{inner: commands.NewHandler(exec, options...)}
}

// Execute runs the build command.
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DiffSiteHandler performs dry-run builds for change previews.
type DiffSiteHandler struct {
	inner *commands.Handler[DiffSiteCommand]
}

// NewDiffSiteHandler constructs a dry-run build handler.
func NewDiffSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DiffSiteCommand]) *DiffSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DiffSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}

		result, err := service.Build(ctx, generator.BuildOptions{
			Locales:       normalizeLocales(msg.Locales),
			Routes:        append([]string(nil), msg.Routes...),
			DryRun:        true,
			IncludeDrafts: msg.Drafts,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result:   result,
			Metadata: map[string]any{"operation": "diff"},
		})
		return err
	}

	options := append([]commands.HandlerOption[DiffSiteCommand]{
		commands.WithLogger[DiffSiteCommand](baseLogger),
		commands.WithOperation[DiffSiteCommand]("site.diff"),
	}, opts...)

	return &DiffSiteHandler{inner: commands.NewHandler(exec, options...)}
}

// Execute runs the diff command.
func (h *DiffSiteHandler) Execute(ctx context.Context, msg DiffSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler clears generated artifacts.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler that removes build outputs.
func NewCleanSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}
		return service.Clean(ctx)
	}

	options := append([]commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("site.clean"),
	}, opts...)

	return &CleanSiteHandler{inner: commands.NewHandler(exec, options...)}
}

// Execute runs the clean command.
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncContentHandler reloads markdown sources into the page registry.
type SyncContentHandler struct {
	inner *commands.Handler[SyncContentCommand]
}

// NewSyncContentHandler constructs a handler that loads documents from disk
// and registers them as pages.
func NewSyncContentHandler(docs interfaces.MarkdownService, pages registry.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncContentCommand]) *SyncContentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncContentCommand) error {
		dir := strings.TrimSpace(msg.Dir)
		if dir == "" {
			dir = "."
		}

		recursive := msg.Recursive
		loaded, err := docs.LoadDirectory(ctx, dir, interfaces.LoadOptions{
			Recursive: &recursive,
		})
		if err != nil {
			return err
		}

		wanted := map[string]struct{}{}
		for _, locale := range msg.Locales {
			wanted[strings.TrimSpace(locale)] = struct{}{}
		}

		registered := 0
		var syncErrs []error
		for _, doc := range loaded {
			if doc == nil {
				continue
			}
			if len(wanted) > 0 {
				if _, ok := wanted[doc.Locale]; !ok {
					continue
				}
			}
			if doc.FrontMatter.Draft && !msg.Drafts {
				continue
			}
			if _, err := pages.Register(ctx, publiccontent.RegisterPageRequest{Document: *doc}); err != nil {
				// One bad document should not abort the whole sync.
				baseLogger.Warn("content.sync.register", "path", doc.FilePath, "error", err)
				syncErrs = append(syncErrs, fmt.Errorf("register %s: %w", doc.FilePath, err))
				continue
			}
			registered++
		}

		baseLogger.Info("content.sync.complete",
			"dir", dir,
			"documents", len(loaded),
			"registered", registered,
			"failed", len(syncErrs),
		)
		return errors.Join(syncErrs...)
	}

	options := append([]commands.HandlerOption[SyncContentCommand]{
		commands.WithLogger[SyncContentCommand](baseLogger),
		commands.WithOperation[SyncContentCommand]("content.sync"),
	}, opts...)

	return &SyncContentHandler{inner: commands.NewHandler(exec, options...)}
}

// Execute runs the sync command.
func (h *SyncContentHandler) Execute(ctx context.Context, msg SyncContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}
	out := make([]string, 0, len(locales))
	for _, locale := range locales {
		trimmed := strings.TrimSpace(locale)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
