package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"time"

	publiccontent "github.com/goliatone/go-docsite/content"
	registry "github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]struct{}
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		files: map[string][]byte{},
		dirs:  map[string]struct{}{},
	}
}

func (m *memoryStorage) EnsureDir(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = struct{}{}
	return nil
}

func (m *memoryStorage) WriteFile(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memoryStorage) ReadFile(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (m *memoryStorage) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name := range m.files {
		if name == path || strings.HasPrefix(name, path+"/") {
			delete(m.files, name)
		}
	}
	return nil
}

func (m *memoryStorage) file(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return string(data), ok
}

type stubRenderer struct {
	mu      sync.Mutex
	renders int
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.mu.Lock()
	r.renders++
	r.mu.Unlock()

	ctx, ok := data.(TemplateContext)
	if !ok {
		return "", fmt.Errorf("unexpected context type %T", data)
	}
	return fmt.Sprintf("<html><title>%s</title></html>", ctx.Page.Title), nil
}

func (r *stubRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return templateContent, nil
}

func (r *stubRenderer) GlobalContext(any) error { return nil }

func (r *stubRenderer) renderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

func seedRegistry(t *testing.T) registry.Service {
	t.Helper()

	pages := registry.NewService()
	ctx := context.Background()

	docs := []struct {
		path   string
		locale string
		title  string
	}{
		{"en/guides/quickstart.md", "en", "Quickstart"},
		{"en/reference/api.md", "en", "API"},
		{"es/guias/inicio.md", "es", "Inicio"},
	}
	for _, d := range docs {
		doc := interfaces.Document{
			FilePath: d.path,
			Locale:   d.locale,
			FrontMatter: interfaces.FrontMatter{
				Title: d.title,
				Raw:   map[string]any{"title": d.title},
			},
			BodyHTML:     []byte("<p>body</p>"),
			LastModified: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
			Checksum:     []byte("sum-" + d.title),
		}
		if _, err := pages.Register(ctx, publiccontent.RegisterPageRequest{Document: doc}); err != nil {
			t.Fatalf("register %s: %v", d.path, err)
		}
	}

	return pages
}

func newTestService(storage *memoryStorage, renderer interfaces.TemplateRenderer, reg registry.Service, incremental bool) Service {
	return NewService(Config{
		OutputDir:       "public",
		BaseURL:         "https://docs.example.com",
		Incremental:     incremental,
		GenerateSitemap: true,
		GenerateRobots:  true,
		GenerateFeeds:   true,
		Workers:         2,
		DefaultLocale:   "en",
	}, Dependencies{
		Registry: reg,
		Renderer: renderer,
		Storage:  storage,
	})
}

func TestBuildWritesPrettyURLOutputs(t *testing.T) {
	storage := newMemoryStorage()
	renderer := &stubRenderer{}
	svc := newTestService(storage, renderer, seedRegistry(t), false)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if result.PagesBuilt != 3 {
		t.Fatalf("expected 3 pages built, got %d", result.PagesBuilt)
	}

	html, ok := storage.file("public/guides/quickstart/index.html")
	if !ok {
		t.Fatal("expected en page at root-level pretty URL")
	}
	if !strings.Contains(html, "<title>Quickstart</title>") {
		t.Fatalf("unexpected page content %q", html)
	}

	if _, ok := storage.file("public/es/guias/inicio/index.html"); !ok {
		t.Fatal("expected es page under locale prefix")
	}
}

func TestBuildWritesSitemapRobotsAndFeeds(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(storage, &stubRenderer{}, seedRegistry(t), false)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}

	sitemap, ok := storage.file("public/sitemap.xml")
	if !ok {
		t.Fatal("expected sitemap.xml")
	}
	if !strings.Contains(sitemap, "<loc>https://docs.example.com/guides/quickstart</loc>") {
		t.Fatalf("expected quickstart location in sitemap, got %s", sitemap)
	}
	if !strings.Contains(sitemap, "<loc>https://docs.example.com/es/guias/inicio</loc>") {
		t.Fatalf("expected locale-prefixed es location in sitemap, got %s", sitemap)
	}

	robots, ok := storage.file("public/robots.txt")
	if !ok {
		t.Fatal("expected robots.txt")
	}
	if !strings.Contains(robots, "Sitemap: https://docs.example.com/sitemap.xml") {
		t.Fatalf("expected sitemap reference in robots, got %s", robots)
	}

	if _, ok := storage.file("public/feeds/en.atom.xml"); !ok {
		t.Fatal("expected en atom feed")
	}
	if _, ok := storage.file("public/feed.xml"); !ok {
		t.Fatal("expected default locale rss alias")
	}

	esFeed, ok := storage.file("public/feeds/es.rss.xml")
	if !ok {
		t.Fatal("expected es rss feed")
	}
	if !strings.Contains(esFeed, "<link>https://docs.example.com/es/guias/inicio</link>") {
		t.Fatalf("expected locale-prefixed link in es feed, got %s", esFeed)
	}
}

func TestIncrementalBuildSkipsUnchangedPages(t *testing.T) {
	storage := newMemoryStorage()
	renderer := &stubRenderer{}
	reg := seedRegistry(t)
	svc := newTestService(storage, renderer, reg, true)
	ctx := context.Background()

	first, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.PagesBuilt != 3 || first.PagesSkipped != 0 {
		t.Fatalf("unexpected first build counts: built=%d skipped=%d", first.PagesBuilt, first.PagesSkipped)
	}

	second, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.PagesBuilt != 0 || second.PagesSkipped != 3 {
		t.Fatalf("expected all pages skipped, got built=%d skipped=%d", second.PagesBuilt, second.PagesSkipped)
	}
	if renderer.renderCount() != 3 {
		t.Fatalf("expected renderer untouched on second build, got %d renders", renderer.renderCount())
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(storage, &stubRenderer{}, seedRegistry(t), false)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !result.DryRun || result.PagesBuilt != 3 {
		t.Fatalf("unexpected dry run result: %+v", result)
	}
	if _, ok := storage.file("public/guides/quickstart/index.html"); ok {
		t.Fatal("dry run must not write artifacts")
	}
}

func TestBuildScopedToRoutes(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(storage, &stubRenderer{}, seedRegistry(t), false)

	result, err := svc.Build(context.Background(), BuildOptions{
		Locales: []string{"en"},
		Routes:  []string{"/guides/quickstart"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("expected single page built, got %d", result.PagesBuilt)
	}
	if _, ok := storage.file("public/reference/api/index.html"); ok {
		t.Fatal("expected api page excluded from scoped build")
	}
}

func TestCleanRemovesOutput(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(storage, &stubRenderer{}, seedRegistry(t), false)
	ctx := context.Background()

	if _, err := svc.Build(ctx, BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := svc.Clean(ctx); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, ok := storage.file("public/sitemap.xml"); ok {
		t.Fatal("expected output removed after clean")
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != ErrServiceDisabled {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func seedDraft(t *testing.T, pages registry.Service) {
	t.Helper()

	doc := interfaces.Document{
		FilePath: "en/guides/preview.md",
		Locale:   "en",
		FrontMatter: interfaces.FrontMatter{
			Title: "Preview",
			Draft: true,
			Raw:   map[string]any{"title": "Preview", "draft": true},
		},
		BodyHTML:     []byte("<p>unpublished</p>"),
		LastModified: time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
		Checksum:     []byte("sum-preview"),
	}
	if _, err := pages.Register(context.Background(), publiccontent.RegisterPageRequest{Document: doc}); err != nil {
		t.Fatalf("register draft: %v", err)
	}
}

func TestBuildIncludesDraftsOnlyWhenRequested(t *testing.T) {
	storage := newMemoryStorage()
	reg := seedRegistry(t)
	seedDraft(t, reg)
	svc := newTestService(storage, &stubRenderer{}, reg, false)
	ctx := context.Background()

	result, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 3 {
		t.Fatalf("expected drafts excluded by default, built %d", result.PagesBuilt)
	}
	if _, ok := storage.file("public/guides/preview/index.html"); ok {
		t.Fatal("expected no artifact for draft page")
	}

	withDrafts, err := svc.Build(ctx, BuildOptions{IncludeDrafts: true})
	if err != nil {
		t.Fatalf("build with drafts: %v", err)
	}
	if withDrafts.PagesBuilt != 4 {
		t.Fatalf("expected draft built on request, built %d", withDrafts.PagesBuilt)
	}
	if _, ok := storage.file("public/guides/preview/index.html"); !ok {
		t.Fatal("expected draft artifact after opting in")
	}
}

type slowRenderer struct {
	delay time.Duration
}

func (r *slowRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	time.Sleep(r.delay)
	return "<html></html>", nil
}

func (r *slowRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return templateContent, nil
}

func (r *slowRenderer) GlobalContext(any) error { return nil }

func TestBuildRenderTimeout(t *testing.T) {
	svc := NewService(Config{
		OutputDir:     "public",
		BaseURL:       "https://docs.example.com",
		DefaultLocale: "en",
		RenderTimeout: 10 * time.Millisecond,
	}, Dependencies{
		Registry: seedRegistry(t),
		Renderer: &slowRenderer{delay: 500 * time.Millisecond},
		Storage:  newMemoryStorage(),
	})

	_, err := svc.Build(context.Background(), BuildOptions{Locales: []string{"en"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected render deadline error, got %v", err)
	}
}
