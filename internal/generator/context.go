package generator

import (
	"context"
	"html/template"
	"time"

	publiccontent "github.com/goliatone/go-docsite/content"
	"github.com/goliatone/go-docsite/internal/chrome"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/internal/seo"
	"github.com/goliatone/go-docsite/internal/sidebar"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

const defaultTemplateName = "page.html"

// SiteMetadata is the site-wide slice of the template context.
type SiteMetadata struct {
	Name          string
	Tagline       string
	BaseURL       string
	Language      string
	DefaultLocale string
	Social        []runtimeconfig.SocialLink
	Navbar        []runtimeconfig.NavbarLink
	GeneratedAt   time.Time
}

// ChromeBootstrap is the static chrome configuration serialized into each
// generated page for the client controller.
type ChromeBootstrap struct {
	SiteName string                     `json:"site_name"`
	Progress interfaces.ProgressOptions `json:"progress"`
}

// PageView is the per-page slice of the template context.
type PageView struct {
	Title        string
	Description  string
	Category     string
	Route        string
	Locale       string
	Tags         []string
	Content      template.HTML
	LastModified time.Time
}

// TemplateContext is the full payload handed to the layout template. TabTitle
// carries the derived document title so static pages match what the chrome
// controller computes at runtime.
type TemplateContext struct {
	Site        SiteMetadata
	TabTitle    string
	Page        PageView
	Sidebar     *sidebar.Tree
	Breadcrumbs []sidebar.Crumb
	SEO         seo.Meta
	SearchJSON  template.JS
	ChromeJSON  template.JS
	JSONLD      template.JS
}

// SiteConfig carries the identity and chrome settings the generator bakes
// into every page.
type SiteConfig struct {
	Site     runtimeconfig.SiteConfig
	Social   []runtimeconfig.SocialLink
	Navbar   []runtimeconfig.NavbarLink
	Progress interfaces.ProgressOptions
}

func (s *service) siteMetadata(generatedAt time.Time) SiteMetadata {
	return SiteMetadata{
		Name:          s.cfg.SiteIdentity.Site.Name,
		Tagline:       s.cfg.SiteIdentity.Site.Tagline,
		BaseURL:       s.cfg.BaseURL,
		Language:      s.cfg.SiteIdentity.Site.Language,
		DefaultLocale: s.cfg.DefaultLocale,
		Social:        append([]runtimeconfig.SocialLink(nil), s.cfg.SiteIdentity.Social...),
		Navbar:        append([]runtimeconfig.NavbarLink(nil), s.cfg.SiteIdentity.Navbar...),
		GeneratedAt:   generatedAt,
	}
}

func (s *service) templateContext(ctx context.Context, siteMeta SiteMetadata, page *publiccontent.Page) (TemplateContext, error) {
	out := TemplateContext{
		Site: siteMeta,
		Page: PageView{
			Title:        page.Meta.Title,
			Description:  page.Meta.Description,
			Category:     page.Category,
			Route:        page.Route,
			Locale:       page.Locale,
			Tags:         append([]string(nil), page.Tags...),
			Content:      template.HTML(page.HTML),
			LastModified: page.LastModified,
		},
	}

	if title, ok := chrome.DeriveTitle(&page.Meta, siteMeta.Name); ok {
		out.TabTitle = title
	}

	if s.deps.Sidebar != nil {
		tree, err := s.deps.Sidebar.Build(ctx, page.Locale, page.Route)
		if err != nil {
			return out, err
		}
		out.Sidebar = tree

		crumbs, err := s.deps.Sidebar.Breadcrumbs(ctx, page.Locale, page.Route)
		if err != nil {
			return out, err
		}
		out.Breadcrumbs = crumbs
	}

	if s.deps.SEO != nil {
		out.SEO = s.deps.SEO.ForPage(page.Meta, page.Route)
		out.JSONLD = template.JS(seo.JSON(seo.Article(
			out.SEO.Title,
			out.SEO.Canonical,
			out.SEO.OG.Image,
			page.Category,
			page.LastModified.UTC().Format(time.RFC3339),
		)))
	}

	if s.deps.Search != nil && s.deps.Search.Enabled() {
		embed, err := s.deps.Search.Embed()
		if err != nil {
			return out, err
		}
		out.SearchJSON = template.JS(embed)
	}

	out.ChromeJSON = template.JS(seo.JSON(ChromeBootstrap{
		SiteName: siteMeta.Name,
		Progress: s.cfg.SiteIdentity.Progress,
	}))

	return out, nil
}
