package seo_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/internal/seo"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

func newBuilder() *seo.Builder {
	return seo.NewBuilder(
		runtimeconfig.SiteConfig{
			Name:    "Hanko Docs",
			BaseURL: "https://docs.example.com",
		},
		runtimeconfig.SEOConfig{
			Description: "Documentation for the platform.",
			Keywords:    []string{"docs", "guides"},
			OGImage:     "/assets/social.png",
			TwitterSite: "@example",
		},
	)
}

func TestForPagePrefersPageDescription(t *testing.T) {
	meta := newBuilder().ForPage(interfaces.PageMeta{
		Title:       "Getting Started",
		Description: "Install and run in five minutes.",
	}, "/guides/getting-started")

	if meta.Description != "Install and run in five minutes." {
		t.Fatalf("expected page description, got %q", meta.Description)
	}
	if meta.Canonical != "https://docs.example.com/guides/getting-started" {
		t.Fatalf("unexpected canonical %q", meta.Canonical)
	}
	if meta.OG.URL != meta.Canonical {
		t.Fatalf("expected og:url to match canonical, got %q", meta.OG.URL)
	}
	if meta.OG.Image != "https://docs.example.com/assets/social.png" {
		t.Fatalf("expected absolute og image, got %q", meta.OG.Image)
	}
}

func TestForPageFallsBackToSiteDefaults(t *testing.T) {
	meta := newBuilder().ForPage(interfaces.PageMeta{}, "/guides")

	if meta.Title != "Hanko Docs" {
		t.Fatalf("expected site name fallback title, got %q", meta.Title)
	}
	if meta.Description != "Documentation for the platform." {
		t.Fatalf("expected default description, got %q", meta.Description)
	}
	if meta.OG.Type != "article" {
		t.Fatalf("expected article og type default, got %q", meta.OG.Type)
	}
	if meta.Twitter.Card != "summary_large_image" {
		t.Fatalf("expected summary card default, got %q", meta.Twitter.Card)
	}
}

func TestWebSiteJSONLD(t *testing.T) {
	payload := seo.JSON(seo.WebSite("Hanko Docs", "https://docs.example.com", "https://docs.example.com/search?q="))

	if !strings.Contains(payload, `"@type":"WebSite"`) {
		t.Fatalf("expected WebSite type, got %s", payload)
	}
	if !strings.Contains(payload, "search_term_string") {
		t.Fatalf("expected search action target, got %s", payload)
	}
}

func TestBreadcrumbListPositions(t *testing.T) {
	payload := seo.JSON(seo.BreadcrumbList([]seo.BreadcrumbItem{
		{Name: "Home", Item: "https://docs.example.com/"},
		{Name: "Guides", Item: "https://docs.example.com/guides"},
	}))

	if !strings.Contains(payload, `"position":1`) || !strings.Contains(payload, `"position":2`) {
		t.Fatalf("expected sequential positions, got %s", payload)
	}
}

func TestHeadTagsRendersResolvedMeta(t *testing.T) {
	meta := newBuilder().ForPage(interfaces.PageMeta{
		Title:       "Getting Started",
		Description: "Install and run in five minutes.",
	}, "/guides/getting-started")

	html := string(seo.HeadTags(meta))

	for _, want := range []string{
		`<meta name="description" content="Install and run in five minutes.">`,
		`<meta name="keywords" content="docs, guides">`,
		`<link rel="canonical" href="https://docs.example.com/guides/getting-started">`,
		`<meta property="og:title" content="Getting Started">`,
		`<meta property="og:url" content="https://docs.example.com/guides/getting-started">`,
		`<meta name="twitter:card" content="summary_large_image">`,
		`<meta name="twitter:site" content="@example">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %s in head tags, got:\n%s", want, html)
		}
	}
}

func TestHeadTagsSkipsEmptyValues(t *testing.T) {
	html := string(seo.HeadTags(seo.Meta{Title: "Bare"}))

	if strings.Contains(html, "description") {
		t.Fatalf("expected no description tag, got:\n%s", html)
	}
	if strings.Contains(html, "canonical") {
		t.Fatalf("expected no canonical link, got:\n%s", html)
	}
	if strings.Contains(html, "og:image") {
		t.Fatalf("expected no og image tag, got:\n%s", html)
	}
}

func TestHeadTagsEscapesContent(t *testing.T) {
	html := string(seo.HeadTags(seo.Meta{Description: `say "hi" & <run>`}))

	if !strings.Contains(html, "say &#34;hi&#34; &amp; &lt;run&gt;") {
		t.Fatalf("expected escaped description, got:\n%s", html)
	}
}
