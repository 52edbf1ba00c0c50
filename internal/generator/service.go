package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	publiccontent "github.com/goliatone/go-docsite/content"
	registry "github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/search"
	"github.com/goliatone/go-docsite/internal/seo"
	"github.com/goliatone/go-docsite/internal/sidebar"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRendererRequired = errors.New("generator: template renderer is required")
	errRegistryRequired = errors.New("generator: page registry is required")
	errStorageRequired  = errors.New("generator: artifact storage is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir        string
	BaseURL          string
	CleanBuild       bool
	Incremental      bool
	CopyAssets       bool
	GenerateSitemap  bool
	GenerateRobots   bool
	GenerateFeeds    bool
	Workers          int
	DefaultLocale    string
	Locales          []string
	Template         string
	SiteIdentity     SiteConfig
	RenderTimeout    time.Duration
	AssetCopyTimeout time.Duration
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Registry registry.Service
	Sidebar  sidebar.Service
	SEO      *seo.Builder
	Search   *search.Service
	Themes   *ThemeSelector
	Renderer interfaces.TemplateRenderer
	Storage  interfaces.ArtifactStorage
	Logger   interfaces.Logger
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	Locales       []string
	Routes        []string
	DryRun        bool
	IncludeDrafts bool
}

// RenderedPage is one generated HTML document. Hash tracks the source
// document, Checksum the rendered output.
type RenderedPage struct {
	Route    string
	Locale   string
	Output   string
	HTML     string
	Hash     string
	Checksum string
	Duration time.Duration
}

// RenderDiagnostic reports the outcome of rendering a single page.
type RenderDiagnostic struct {
	Route    string
	Locale   string
	Skipped  bool
	Duration time.Duration
	Err      error
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt    int
	PagesSkipped  int
	AssetsBuilt   int
	AssetsSkipped int
	FeedsBuilt    int
	Locales       []string
	Duration      time.Duration
	Rendered      []RenderedPage
	Diagnostics   []RenderDiagnostic
	Errors        []error
	DryRun        bool
}

// NewService wires a generator implementation with the provided configuration
// and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

type disabledService struct{}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	skipped    bool
	err        error
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if s.deps.Registry == nil {
		return nil, errRegistryRequired
	}

	start := s.now()
	generatedAt := start.UTC()

	locales := opts.Locales
	if len(locales) == 0 {
		locales = s.cfg.Locales
	}
	if len(locales) == 0 {
		registered, err := s.deps.Registry.Locales(ctx)
		if err != nil {
			return nil, err
		}
		locales = registered
	}
	if len(locales) == 0 && s.cfg.DefaultLocale != "" {
		locales = []string{s.cfg.DefaultLocale}
	}

	pages, err := s.collectPages(ctx, locales, opts.Routes, opts.IncludeDrafts)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Locales:     append([]string(nil), locales...),
		DryRun:      opts.DryRun,
		Diagnostics: make([]RenderDiagnostic, 0, len(pages)),
	}

	siteMeta := s.siteMetadata(generatedAt)
	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")

	writer := newArtifactWriter(s.deps.Storage)

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	manifest, manifestErr := s.loadManifest(ctx)
	var errorsSlice []error
	if manifestErr != nil {
		errorsSlice = append(errorsSlice, manifestErr)
	}
	if manifest == nil {
		manifest = newBuildManifest()
	}

	var (
		mu       sync.Mutex
		rendered = make([]RenderedPage, 0, len(pages))
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	workers := s.effectiveWorkerCount(len(pages))
	if workers <= 1 || len(pages) <= 1 {
		for _, page := range pages {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
				collect(s.renderPage(ctx, siteMeta, page, manifest, baseDir))
			}
		}
	} else {
		s.renderConcurrently(ctx, siteMeta, pages, workers, manifest, baseDir, collect)
	}

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = time.Since(start)
		if len(errorsSlice) > 0 {
			result.Errors = append(result.Errors, errorsSlice...)
			return result, errors.Join(errorsSlice...)
		}
		return result, nil
	}

	if err := s.persistPages(ctx, writer, rendered, baseDir); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	if s.cfg.CopyAssets && s.deps.Themes != nil {
		summary, err := s.copyAssets(ctx, writer, manifest, baseDir)
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		} else {
			result.AssetsBuilt += summary.Built
			result.AssetsSkipped += summary.Skipped
		}
	}

	if s.cfg.GenerateSitemap {
		if err := s.writeSitemap(ctx, writer, pages, generatedAt, baseDir); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx, writer, baseDir); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateFeeds {
		written, err := s.writeFeeds(ctx, writer, siteMeta, pages, generatedAt, baseDir)
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		}
		result.FeedsBuilt = written
	}

	if len(errorsSlice) == 0 {
		manifest.GeneratedAt = generatedAt
		for _, page := range rendered {
			manifest.setPage(manifestPage{
				Route:      page.Route,
				Locale:     page.Locale,
				Output:     page.Output,
				Hash:       page.Hash,
				Checksum:   page.Checksum,
				RenderedAt: generatedAt,
			})
		}
		if err := s.persistManifest(ctx, writer, manifest); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	result.Rendered = rendered
	result.Duration = time.Since(start)

	s.logger.Info("build.complete",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"assets_built", result.AssetsBuilt,
		"duration", result.Duration.String(),
	)

	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

// Clean removes the output directory contents.
func (s *service) Clean(ctx context.Context) error {
	if s.deps.Storage == nil {
		return errStorageRequired
	}
	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	if baseDir == "" {
		return nil
	}
	return s.deps.Storage.Remove(ctx, baseDir)
}

func (s *service) collectPages(ctx context.Context, locales []string, routes []string, includeDrafts bool) ([]*publiccontent.Page, error) {
	wanted := map[string]struct{}{}
	for _, route := range routes {
		wanted[route] = struct{}{}
	}

	var out []*publiccontent.Page
	for _, locale := range locales {
		pages, err := s.deps.Registry.List(ctx, publiccontent.ListOptions{Locale: locale, IncludeDrafts: includeDrafts})
		if err != nil {
			return nil, err
		}
		for _, page := range pages {
			if len(wanted) > 0 {
				if _, ok := wanted[page.Route]; !ok {
					continue
				}
			}
			out = append(out, page)
		}
	}
	return out, nil
}

func (s *service) renderConcurrently(
	ctx context.Context,
	siteMeta SiteMetadata,
	pages []*publiccontent.Page,
	workers int,
	manifest *buildManifest,
	baseDir string,
	collect func(renderOutcome),
) {
	jobs := make(chan *publiccontent.Page)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range jobs {
				select {
				case <-ctx.Done():
					collect(renderOutcome{
						diagnostic: RenderDiagnostic{Route: page.Route, Locale: page.Locale, Err: ctx.Err()},
						err:        ctx.Err(),
					})
					return
				default:
					collect(s.renderPage(ctx, siteMeta, page, manifest, baseDir))
				}
			}
		}()
	}

feed:
	for _, page := range pages {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- page:
		}
	}
	close(jobs)
	wg.Wait()
}

func (s *service) renderPage(
	ctx context.Context,
	siteMeta SiteMetadata,
	page *publiccontent.Page,
	manifest *buildManifest,
	baseDir string,
) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{Route: page.Route, Locale: page.Locale},
	}

	if s.cfg.Incremental && manifest != nil && page.Checksum != "" {
		expected := joinOutputPath(baseDir, buildOutputPath(page.Route, page.Locale, s.cfg.DefaultLocale))
		if manifest.shouldSkipPage(page.Route, page.Locale, page.Checksum, expected) {
			outcome.skipped = true
			outcome.diagnostic.Skipped = true
			return outcome
		}
	}

	templateCtx, err := s.templateContext(ctx, siteMeta, page)
	if err != nil {
		outcome.err = err
		outcome.diagnostic.Err = err
		return outcome
	}

	templateName := s.cfg.Template
	if templateName == "" {
		templateName = defaultTemplateName
	}

	start := s.now()
	html, err := s.render(ctx, templateName, templateCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := fmt.Errorf("generator: render %q for %s (%s): %w", templateName, page.Route, page.Locale, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	outcome.page = RenderedPage{
		Route:    page.Route,
		Locale:   page.Locale,
		HTML:     html,
		Hash:     page.Checksum,
		Duration: duration,
	}
	return outcome
}

// render executes the template, watched by RenderTimeout when one is
// configured. The renderer has no cancellation hook, so a runaway template
// keeps its goroutine but the build moves on with a deadline error.
func (s *service) render(ctx context.Context, templateName string, data any) (string, error) {
	if s.cfg.RenderTimeout <= 0 {
		return s.deps.Renderer.Render(templateName, data)
	}

	rctx, cancel := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancel()

	type renderReply struct {
		html string
		err  error
	}
	done := make(chan renderReply, 1)
	go func() {
		html, err := s.deps.Renderer.Render(templateName, data)
		done <- renderReply{html: html, err: err}
	}()

	select {
	case reply := <-done:
		return reply.html, reply.err
	case <-rctx.Done():
		return "", rctx.Err()
	}
}

func (s *service) persistPages(ctx context.Context, writer artifactWriter, pages []RenderedPage, baseDir string) error {
	if len(pages) == 0 {
		return nil
	}
	dirCache := map[string]struct{}{}
	if baseDir != "" {
		dirCache[baseDir] = struct{}{}
		if err := writer.EnsureDir(ctx, baseDir); err != nil {
			return err
		}
	}
	for i := range pages {
		destRel := buildOutputPath(pages[i].Route, pages[i].Locale, s.cfg.DefaultLocale)
		if strings.TrimSpace(destRel) == "" {
			destRel = "index.html"
		}
		fullPath := joinOutputPath(baseDir, destRel)
		if err := ensureDir(ctx, writer, dirCache, path.Dir(fullPath)); err != nil {
			return err
		}
		pages[i].Output = fullPath
		pages[i].Checksum = computeHashFromString(pages[i].HTML)
		if err := writer.WriteFile(ctx, fullPath, []byte(pages[i].HTML)); err != nil {
			return err
		}
	}
	return nil
}

type assetCopySummary struct {
	Built   int
	Skipped int
}

func (s *service) copyAssets(ctx context.Context, writer artifactWriter, manifest *buildManifest, baseDir string) (assetCopySummary, error) {
	summary := assetCopySummary{}

	if s.cfg.AssetCopyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AssetCopyTimeout)
		defer cancel()
	}

	assets, err := s.deps.Themes.Assets()
	if err != nil {
		return summary, err
	}

	dirCache := map[string]struct{}{}
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		data, err := s.deps.Themes.Open(asset)
		if err != nil {
			return summary, err
		}
		destRel := path.Join("assets", strings.TrimLeft(asset, "/"))
		fullPath := joinOutputPath(baseDir, destRel)
		checksum := computeHash(data)
		if manifest != nil && s.cfg.Incremental && manifest.shouldSkipAsset(asset, checksum, fullPath) {
			summary.Skipped++
			continue
		}
		if err := ensureDir(ctx, writer, dirCache, path.Dir(fullPath)); err != nil {
			return summary, err
		}
		if err := writer.WriteFile(ctx, fullPath, data); err != nil {
			return summary, err
		}
		summary.Built++
		if manifest != nil {
			manifest.setAsset(manifestAsset{
				Source:   asset,
				Output:   fullPath,
				Checksum: checksum,
				Size:     int64(len(data)),
				CopiedAt: s.now(),
			})
		}
	}
	return summary, nil
}

func (s *service) effectiveWorkerCount(pageCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if pageCount > 0 && workers > pageCount {
		return pageCount
	}
	return workers
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.Trim(dir, " ")
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(strings.Trim(base, "/"), rel)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
