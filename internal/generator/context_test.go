package generator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/internal/search"
	"github.com/goliatone/go-docsite/internal/seo"
	"github.com/goliatone/go-docsite/internal/sidebar"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

const testLayout = `{{define "page.html"}}<!doctype html>
<html lang="{{.Site.Language}}">
<head>
<title>{{.TabTitle}}</title>
<meta name="description" content="{{.SEO.Description}}">
<link rel="canonical" href="{{.SEO.Canonical}}">
<script>window.__DOCSITE_CHROME__ = {{.ChromeJSON}};</script>
{{if .SearchJSON}}<script>window.__DOCSITE_SEARCH__ = {{.SearchJSON}};</script>{{end}}
</head>
<body>
<nav>{{range .Sidebar.Sections}}<section data-category="{{.Category}}">{{range .Items}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a>{{end}}</section>{{end}}</nav>
<main>{{.Page.Content}}</main>
</body>
</html>{{end}}`

func TestBuildRendersFullTemplateContext(t *testing.T) {
	storage := newMemoryStorage()
	reg := seedRegistry(t)

	side, err := sidebar.NewService(reg)
	if err != nil {
		t.Fatalf("sidebar service: %v", err)
	}

	renderer := NewTemplateRendererFS(fstest.MapFS{
		"page.html": &fstest.MapFile{Data: []byte(testLayout)},
	})

	svc := NewService(Config{
		OutputDir:     "public",
		BaseURL:       "https://docs.example.com",
		Workers:       1,
		DefaultLocale: "en",
		SiteIdentity: SiteConfig{
			Site: runtimeconfig.SiteConfig{
				Name:     "Hanko Docs",
				Language: "en",
			},
			Progress: interfaces.ProgressOptions{MinimumFraction: 0.16, Easing: "ease"},
		},
	}, Dependencies{
		Registry: reg,
		Sidebar:  side,
		SEO: seo.NewBuilder(
			runtimeconfig.SiteConfig{Name: "Hanko Docs", BaseURL: "https://docs.example.com"},
			runtimeconfig.SEOConfig{Description: "Docs for the platform."},
		),
		Search: search.NewService(runtimeconfig.SearchConfig{
			Provider:  "algolia",
			AppID:     "APP123",
			APIKey:    "key",
			IndexName: "docs",
		}, true),
		Renderer: renderer,
		Storage:  storage,
	})

	if _, err := svc.Build(context.Background(), BuildOptions{Locales: []string{"en"}}); err != nil {
		t.Fatalf("build: %v", err)
	}

	html, ok := storage.file("public/guides/quickstart/index.html")
	if !ok {
		t.Fatal("expected rendered quickstart page")
	}

	for _, want := range []string{
		"<title>Quickstart | Hanko Docs</title>",
		`href="https://docs.example.com/guides/quickstart"`,
		`class="active"`,
		"__DOCSITE_CHROME__",
		"__DOCSITE_SEARCH__",
		"<p>body</p>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered page:\n%s", want, html)
		}
	}
}
