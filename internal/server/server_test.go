package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	publiccontent "github.com/goliatone/go-docsite/content"
	registry "github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/internal/search"
	"github.com/goliatone/go-docsite/internal/server"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

const previewLayout = `{{define "page.html"}}<html><title>{{.Page.Title}}</title><body>{{.Page.Content}}</body></html>{{end}}`

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	reg := registry.NewService()
	ctx := context.Background()

	docs := []struct {
		path   string
		locale string
		title  string
		draft  bool
	}{
		{"en/guides/quickstart.md", "en", "Quickstart", false},
		{"en/guides/preview.md", "en", "Preview", true},
		{"es/guias/inicio.md", "es", "Inicio", false},
	}
	for _, d := range docs {
		doc := interfaces.Document{
			FilePath: d.path,
			Locale:   d.locale,
			FrontMatter: interfaces.FrontMatter{
				Title: d.title,
				Draft: d.draft,
				Raw:   map[string]any{"title": d.title, "draft": d.draft},
			},
			BodyHTML:     []byte("<p>" + d.title + "</p>"),
			LastModified: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		}
		if _, err := reg.Register(ctx, publiccontent.RegisterPageRequest{Document: doc}); err != nil {
			t.Fatalf("register %s: %v", d.path, err)
		}
	}

	renderer := generator.NewTemplateRendererFS(fstest.MapFS{
		"page.html": &fstest.MapFile{Data: []byte(previewLayout)},
	})

	gen := generator.NewService(generator.Config{
		BaseURL:       "https://docs.example.com",
		Workers:       1,
		DefaultLocale: "en",
	}, generator.Dependencies{
		Registry: reg,
		Renderer: renderer,
	})

	srv, err := server.New(server.Config{
		DefaultLocale: "en",
		SiteName:      "Hanko Docs",
		Progress:      interfaces.ProgressOptions{MinimumFraction: 0.16, Easing: "ease"},
	}, server.Dependencies{
		Generator: gen,
		Registry:  reg,
		Search: search.NewService(runtimeconfig.SearchConfig{
			Provider:  "algolia",
			AppID:     "APP123",
			APIKey:    "key",
			IndexName: "docs",
		}, true),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	return srv
}

func TestServesRegisteredPage(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/guides/quickstart", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>Quickstart</title>") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestServesLocalePrefixedPage(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/es/guias/inicio", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Inicio") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestServesDraftPageInPreview(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/guides/preview", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for draft page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>Preview</title>") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/missing/page", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChromeBootstrapEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/chrome.json", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		SiteName string                     `json:"site_name"`
		Progress interfaces.ProgressOptions `json:"progress"`
		Search   *search.WidgetConfig       `json:"search"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode chrome payload: %v", err)
	}

	if payload.SiteName != "Hanko Docs" {
		t.Fatalf("unexpected site name %q", payload.SiteName)
	}
	if payload.Progress.MinimumFraction != 0.16 || payload.Progress.Easing != "ease" {
		t.Fatalf("unexpected progress options %+v", payload.Progress)
	}
	if payload.Search == nil || payload.Search.IndexName != "docs" {
		t.Fatalf("expected search widget in payload, got %+v", payload.Search)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}
