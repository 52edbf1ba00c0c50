package seo

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// OpenGraph carries the og:* head tag values.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
}

// Twitter carries the twitter:* head tag values.
type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the resolved head metadata for one page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Keywords    []string
	OG          OpenGraph
	Twitter     Twitter
}

// Builder derives page head metadata from site configuration.
type Builder struct {
	site     runtimeconfig.SiteConfig
	defaults runtimeconfig.SEOConfig
}

// NewBuilder constructs a metadata builder for the configured site.
func NewBuilder(site runtimeconfig.SiteConfig, defaults runtimeconfig.SEOConfig) *Builder {
	return &Builder{site: site, defaults: defaults}
}

// ForPage resolves head metadata for a page: the page description wins over
// the site default, canonical and og:url are absolute against the base URL.
func (b *Builder) ForPage(meta interfaces.PageMeta, route string) Meta {
	description := meta.Description
	if description == "" {
		description = b.defaults.Description
	}

	title := meta.Title
	if title == "" {
		title = b.site.Name
	}

	canonical := b.absolute(route)

	ogType := b.defaults.OGType
	if ogType == "" {
		ogType = "article"
	}
	card := b.defaults.TwitterCard
	if card == "" {
		card = "summary_large_image"
	}

	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Keywords:    append([]string(nil), b.defaults.Keywords...),
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       b.absolute(b.defaults.OGImage),
			Type:        ogType,
			URL:         canonical,
		},
		Twitter: Twitter{
			Card:  card,
			Site:  b.defaults.TwitterSite,
			Image: b.absolute(b.defaults.OGImage),
		},
	}
}

// absolute joins a route or asset path with the site base URL. Already
// absolute values pass through.
func (b *Builder) absolute(path string) string {
	if path == "" {
		return ""
	}
	if strings.Contains(path, "://") {
		return path
	}

	base, err := url.Parse(b.site.BaseURL)
	if err != nil || base.Host == "" {
		return path
	}

	ref := &url.URL{Path: path}
	return base.ResolveReference(ref).String()
}
