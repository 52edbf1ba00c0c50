package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	publiccontent "github.com/goliatone/go-docsite/content"
	"github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/google/uuid"
)

func testDocument(path, locale, title string) interfaces.Document {
	return interfaces.Document{
		FilePath: path,
		Locale:   locale,
		FrontMatter: interfaces.FrontMatter{
			Title: title,
			Raw:   map[string]any{"title": title},
		},
		Body:         []byte("body"),
		BodyHTML:     []byte("<p>body</p>"),
		LastModified: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		Checksum:     []byte{0xab, 0x12, 0x3f},
	}
}

func TestRegisterDerivesRouteFromPath(t *testing.T) {
	svc := content.NewService()

	page, err := svc.Register(context.Background(), publiccontent.RegisterPageRequest{
		Document: testDocument("en/guides/Getting Started.md", "en", "Getting Started"),
	})
	if err != nil {
		t.Fatalf("register page: %v", err)
	}

	if page.Route != "/guides/getting-started" {
		t.Fatalf("expected derived route, got %q", page.Route)
	}
	if page.Slug != "getting-started" {
		t.Fatalf("expected normalized slug, got %q", page.Slug)
	}
	if page.HTML != "<p>body</p>" {
		t.Fatalf("expected document HTML, got %q", page.HTML)
	}
	if page.ID == uuid.Nil {
		t.Fatal("expected generated page id")
	}
}

func TestRegisterFrontMatterSlugWins(t *testing.T) {
	svc := content.NewService()

	doc := testDocument("en/guides/draft-notes.md", "en", "Validation Guide")
	doc.FrontMatter.Slug = "validation"
	doc.FrontMatter.Raw["slug"] = "validation"

	page, err := svc.Register(context.Background(), publiccontent.RegisterPageRequest{Document: doc})
	if err != nil {
		t.Fatalf("register page: %v", err)
	}

	if page.Route != "/guides/validation" {
		t.Fatalf("expected slug override in route, got %q", page.Route)
	}
}

func TestRegisterIndexCollapsesToDirectory(t *testing.T) {
	svc := content.NewService()

	page, err := svc.Register(context.Background(), publiccontent.RegisterPageRequest{
		Document: testDocument("en/guides/index.md", "en", "Guides"),
	})
	if err != nil {
		t.Fatalf("register page: %v", err)
	}

	if page.Route != "/guides" {
		t.Fatalf("expected index route collapse, got %q", page.Route)
	}
}

func TestRegisterRejectsInvalidFrontMatter(t *testing.T) {
	svc := content.NewService()

	doc := testDocument("en/guides/bad.md", "en", "Bad")
	doc.FrontMatter.Raw["weight"] = -4

	_, err := svc.Register(context.Background(), publiccontent.RegisterPageRequest{Document: doc})
	if !errors.Is(err, publiccontent.ErrFrontMatterInvalid) {
		t.Fatalf("expected front matter error, got %v", err)
	}
}

func TestRegisterRouteConflict(t *testing.T) {
	svc := content.NewService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, publiccontent.RegisterPageRequest{
		Document: testDocument("en/guides/setup.md", "en", "Setup"),
	}); err != nil {
		t.Fatalf("register first page: %v", err)
	}

	_, err := svc.Register(ctx, publiccontent.RegisterPageRequest{
		Document: testDocument("en/guides/Setup.md", "en", "Setup Again"),
	})
	if !errors.Is(err, publiccontent.ErrRouteConflict) {
		t.Fatalf("expected route conflict, got %v", err)
	}
}

func TestRegisterSamePathReplacesPage(t *testing.T) {
	svc := content.NewService()
	ctx := context.Background()

	doc := testDocument("en/guides/setup.md", "en", "Setup")
	if _, err := svc.Register(ctx, publiccontent.RegisterPageRequest{Document: doc}); err != nil {
		t.Fatalf("register page: %v", err)
	}

	doc.FrontMatter.Title = "Setup v2"
	doc.FrontMatter.Raw["title"] = "Setup v2"
	if _, err := svc.Register(ctx, publiccontent.RegisterPageRequest{Document: doc}); err != nil {
		t.Fatalf("re-register page: %v", err)
	}

	page, err := svc.GetByRoute(ctx, "/guides/setup", "en")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if page.Meta.Title != "Setup v2" {
		t.Fatalf("expected updated title, got %q", page.Meta.Title)
	}
}

func TestGetByRouteMissing(t *testing.T) {
	svc := content.NewService()

	_, err := svc.GetByRoute(context.Background(), "/missing", "en")
	if !errors.Is(err, publiccontent.ErrPageNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListOrdersByWeightThenTitle(t *testing.T) {
	svc := content.NewService()
	ctx := context.Background()

	docs := []struct {
		path   string
		title  string
		weight int
		draft  bool
	}{
		{"en/guides/zeta.md", "Zeta", 1, false},
		{"en/guides/alpha.md", "Alpha", 1, false},
		{"en/guides/first.md", "First", 0, false},
		{"en/guides/hidden.md", "Hidden", 0, true},
	}
	for _, d := range docs {
		doc := testDocument(d.path, "en", d.title)
		doc.FrontMatter.Weight = d.weight
		doc.FrontMatter.Draft = d.draft
		doc.FrontMatter.Category = "Guides"
		if _, err := svc.Register(ctx, publiccontent.RegisterPageRequest{Document: doc}); err != nil {
			t.Fatalf("register %s: %v", d.path, err)
		}
	}

	pages, err := svc.List(ctx, publiccontent.ListOptions{Locale: "en"})
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}

	got := make([]string, 0, len(pages))
	for _, p := range pages {
		got = append(got, p.Meta.Title)
	}
	want := []string{"First", "Alpha", "Zeta"}
	if len(got) != len(want) {
		t.Fatalf("expected %d pages, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}

	withDrafts, err := svc.List(ctx, publiccontent.ListOptions{Locale: "en", IncludeDrafts: true})
	if err != nil {
		t.Fatalf("list with drafts: %v", err)
	}
	if len(withDrafts) != 4 {
		t.Fatalf("expected drafts included, got %d pages", len(withDrafts))
	}
}

func TestCategoriesAndLocales(t *testing.T) {
	svc := content.NewService()
	ctx := context.Background()

	enDoc := testDocument("en/guides/setup.md", "en", "Setup")
	enDoc.FrontMatter.Category = "Guides"
	esDoc := testDocument("es/referencia/api.md", "es", "API")
	esDoc.FrontMatter.Category = "Referencia"

	for _, doc := range []interfaces.Document{enDoc, esDoc} {
		if _, err := svc.Register(ctx, publiccontent.RegisterPageRequest{Document: doc}); err != nil {
			t.Fatalf("register %s: %v", doc.FilePath, err)
		}
	}

	categories, err := svc.Categories(ctx, "en")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 1 || categories[0] != "Guides" {
		t.Fatalf("expected en categories [Guides], got %v", categories)
	}

	locales, err := svc.Locales(ctx)
	if err != nil {
		t.Fatalf("locales: %v", err)
	}
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "es" {
		t.Fatalf("expected locales [en es], got %v", locales)
	}
}

func TestResetClearsRegistry(t *testing.T) {
	svc := content.NewService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, publiccontent.RegisterPageRequest{
		Document: testDocument("en/guides/setup.md", "en", "Setup"),
	}); err != nil {
		t.Fatalf("register page: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	pages, err := svc.List(ctx, publiccontent.ListOptions{})
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(pages) != 0 {
		t.Fatalf("expected empty registry, got %d pages", len(pages))
	}
}
