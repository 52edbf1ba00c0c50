package content

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-docsite/content"
	"github.com/goliatone/go-docsite/internal/validation"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/google/uuid"
)

// IDGenerator produces identifiers for registered pages.
type IDGenerator func() uuid.UUID

// Service exposes the documentation page registry use-cases.
type Service interface {
	Register(ctx context.Context, req content.RegisterPageRequest) (*content.Page, error)
	GetByRoute(ctx context.Context, route string, locale string) (*content.Page, error)
	List(ctx context.Context, opts content.ListOptions) ([]*content.Page, error)
	Categories(ctx context.Context, locale string) ([]string, error)
	Locales(ctx context.Context) ([]string, error)
	Reset(ctx context.Context) error
}

// ServiceOption customizes registry construction.
type ServiceOption func(*service)

// WithIDGenerator overrides the page identifier source.
func WithIDGenerator(gen IDGenerator) ServiceOption {
	return func(s *service) {
		if gen != nil {
			s.id = gen
		}
	}
}

// WithClock overrides the registry clock.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSlugNormalizer overrides the normalizer used for route segments.
func WithSlugNormalizer(n content.SlugNormalizer) ServiceOption {
	return func(s *service) {
		if n != nil {
			s.slugs = n
		}
	}
}

// WithFrontMatterValidation toggles schema validation of document front matter.
func WithFrontMatterValidation(enabled bool) ServiceOption {
	return func(s *service) {
		s.validate = enabled
	}
}

type service struct {
	mu       sync.RWMutex
	pages    map[string]*content.Page
	now      func() time.Time
	id       IDGenerator
	slugs    content.SlugNormalizer
	validate bool
}

// NewService constructs an in-memory page registry.
func NewService(opts ...ServiceOption) Service {
	s := &service{
		pages:    map[string]*content.Page{},
		now:      time.Now,
		id:       uuid.New,
		slugs:    content.DefaultSlugNormalizer(),
		validate: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register validates the document and stores its page record under a derived route.
func (s *service) Register(ctx context.Context, req content.RegisterPageRequest) (*content.Page, error) {
	doc := req.Document

	if doc.Locale == "" {
		return nil, content.ErrLocaleRequired
	}

	if s.validate && len(doc.FrontMatter.Raw) > 0 {
		if err := validation.ValidateFrontMatter(doc.FrontMatter.Raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", content.ErrFrontMatterInvalid, doc.FilePath, err)
		}
	}

	slugValue, err := s.resolveSlug(doc)
	if err != nil {
		return nil, err
	}

	route := req.RouteDefault
	if route == "" {
		route = s.deriveRoute(doc, slugValue)
	}
	route = normalizeRoute(route)
	if route == "" {
		return nil, content.ErrRouteRequired
	}

	page := &content.Page{
		ID:     s.id(),
		Route:  route,
		Slug:   slugValue,
		Locale: doc.Locale,
		Meta: interfaces.PageMeta{
			Title:       doc.FrontMatter.Title,
			Description: doc.FrontMatter.Description,
			Category:    doc.FrontMatter.Category,
		},
		Category:     doc.FrontMatter.Category,
		Weight:       doc.FrontMatter.Weight,
		Tags:         append([]string(nil), doc.FrontMatter.Tags...),
		Draft:        doc.FrontMatter.Draft,
		HTML:         req.HTML,
		SourcePath:   doc.FilePath,
		LastModified: doc.LastModified,
		Checksum:     hex.EncodeToString(doc.Checksum),
	}
	if page.HTML == "" {
		page.HTML = string(doc.BodyHTML)
	}
	if page.Meta.Title == "" {
		page.Meta.Title = titleFromSlug(slugValue)
	}

	key := pageKey(doc.Locale, route)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pages[key]; ok && existing.SourcePath != page.SourcePath {
		return nil, fmt.Errorf("%w: %s (%s)", content.ErrRouteConflict, route, doc.Locale)
	}
	s.pages[key] = page

	return clonePage(page), nil
}

// GetByRoute returns the page registered under route for the given locale.
// Draft pages resolve too so preview surfaces can render them.
func (s *service) GetByRoute(ctx context.Context, route string, locale string) (*content.Page, error) {
	if locale == "" {
		return nil, content.ErrLocaleRequired
	}

	route = normalizeRoute(route)

	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[pageKey(locale, route)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", content.ErrPageNotFound, route, locale)
	}

	return clonePage(page), nil
}

// List returns pages matching opts ordered by weight then title.
func (s *service) List(ctx context.Context, opts content.ListOptions) ([]*content.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*content.Page
	for _, page := range s.pages {
		if page.Draft && !opts.IncludeDrafts {
			continue
		}
		if opts.Locale != "" && page.Locale != opts.Locale {
			continue
		}
		if opts.Category != "" && page.Category != opts.Category {
			continue
		}
		out = append(out, clonePage(page))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight < out[j].Weight
		}
		if out[i].Meta.Title != out[j].Meta.Title {
			return out[i].Meta.Title < out[j].Meta.Title
		}
		return out[i].Route < out[j].Route
	})

	return out, nil
}

// Categories returns the distinct categories of non-draft pages for a locale.
func (s *service) Categories(ctx context.Context, locale string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	for _, page := range s.pages {
		if page.Draft || page.Category == "" {
			continue
		}
		if locale != "" && page.Locale != locale {
			continue
		}
		seen[page.Category] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)

	return out, nil
}

// Locales returns the locales with at least one registered page.
func (s *service) Locales(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	for _, page := range s.pages {
		seen[page.Locale] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for locale := range seen {
		out = append(out, locale)
	}
	sort.Strings(out)

	return out, nil
}

// Reset drops every registered page.
func (s *service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages = map[string]*content.Page{}
	return nil
}

func (s *service) resolveSlug(doc interfaces.Document) (string, error) {
	raw := doc.FrontMatter.Slug
	if raw == "" {
		raw = baseName(doc.FilePath)
	}
	if raw == "" {
		return "", content.ErrSlugRequired
	}

	normalized, err := s.slugs.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", content.ErrSlugInvalid, raw)
	}

	return normalized, nil
}

// deriveRoute maps the document's relative path to a route, replacing the
// final segment with the resolved slug. The locale prefix is stripped so
// routes stay locale independent.
func (s *service) deriveRoute(doc interfaces.Document, slugValue string) string {
	rel := strings.TrimSuffix(doc.FilePath, ".md")
	rel = strings.TrimSuffix(rel, ".markdown")

	segments := strings.Split(rel, "/")
	if len(segments) > 0 && segments[0] == doc.Locale {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "/" + slugValue
	}

	last := len(segments) - 1
	if segments[last] == "index" || segments[last] == "README" {
		segments = segments[:last]
	} else {
		segments[last] = slugValue
	}

	cleaned := make([]string, 0, len(segments))
	for _, seg := range segments {
		if normalized, err := s.slugs.Normalize(seg); err == nil && normalized != "" {
			cleaned = append(cleaned, normalized)
		}
	}

	return "/" + strings.Join(cleaned, "/")
}

func pageKey(locale, route string) string {
	return locale + "\x00" + route
}

func normalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return ""
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if route != "/" {
		route = strings.TrimSuffix(route, "/")
	}
	return route
}

func baseName(path string) string {
	path = strings.TrimSuffix(path, ".md")
	path = strings.TrimSuffix(path, ".markdown")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}

func titleFromSlug(slugValue string) string {
	words := strings.Split(slugValue, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func clonePage(page *content.Page) *content.Page {
	cloned := *page
	cloned.Tags = append([]string(nil), page.Tags...)
	return &cloned
}
