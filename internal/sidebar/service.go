package sidebar

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-docsite/content"
	internalcontent "github.com/goliatone/go-docsite/internal/content"
)

var (
	ErrRegistryRequired = errors.New("sidebar: page registry is required")
	ErrLocaleRequired   = errors.New("sidebar: locale is required")
)

// Item is a single sidebar entry.
type Item struct {
	Title  string `json:"title"`
	Route  string `json:"route"`
	Href   string `json:"href"`
	Weight int    `json:"weight"`
	Active bool   `json:"active"`
}

// Section groups sidebar entries under a category heading.
type Section struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
	Active   bool   `json:"active"`
}

// Tree is the rendered sidebar for one locale and current route.
type Tree struct {
	Locale   string    `json:"locale"`
	Sections []Section `json:"sections"`
}

// Crumb is a breadcrumb entry. Label falls back to a prettified segment.
type Crumb struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// URLResolver turns a page record into a hyperlink target.
type URLResolver interface {
	Resolve(ctx context.Context, page *content.Page) (string, error)
}

// Service builds sidebar trees and breadcrumbs from the page registry.
type Service interface {
	Build(ctx context.Context, locale, currentRoute string) (*Tree, error)
	ActiveCategory(ctx context.Context, locale, currentRoute string) (string, error)
	Breadcrumbs(ctx context.Context, locale, currentRoute string) ([]Crumb, error)
}

// ServiceOption customizes sidebar construction.
type ServiceOption func(*service)

// WithURLResolver overrides how sidebar hrefs are produced.
func WithURLResolver(resolver URLResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

type service struct {
	registry internalcontent.Service
	resolver URLResolver
}

// NewService constructs a sidebar service backed by the page registry.
func NewService(registry internalcontent.Service, opts ...ServiceOption) (Service, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	s := &service{
		registry: registry,
		resolver: routeResolver{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Build assembles the sidebar tree for a locale, marking the entry and
// section that own currentRoute as active.
func (s *service) Build(ctx context.Context, locale, currentRoute string) (*Tree, error) {
	if locale == "" {
		return nil, ErrLocaleRequired
	}

	pages, err := s.registry.List(ctx, content.ListOptions{Locale: locale})
	if err != nil {
		return nil, err
	}

	currentRoute = cleanRoute(currentRoute)

	grouped := map[string][]Item{}
	for _, page := range pages {
		href, err := s.resolver.Resolve(ctx, page)
		if err != nil {
			return nil, err
		}
		if href == "" {
			href = page.Route
		}

		item := Item{
			Title:  page.Meta.Title,
			Route:  page.Route,
			Href:   href,
			Weight: page.Weight,
			Active: isActive(page.Route, currentRoute),
		}

		grouped[page.Category] = append(grouped[page.Category], item)
	}

	// Sections order alphabetically, uncategorized entries lead. Items keep
	// the registry's weight-then-title ordering.
	order := make([]string, 0, len(grouped))
	for category := range grouped {
		order = append(order, category)
	}
	sort.Strings(order)

	tree := &Tree{Locale: locale}
	for _, category := range order {
		section := Section{Category: category, Items: grouped[category]}
		for _, item := range section.Items {
			if item.Active {
				section.Active = true
				break
			}
		}
		tree.Sections = append(tree.Sections, section)
	}

	return tree, nil
}

// ActiveCategory returns the category owning currentRoute, or empty when no
// registered page matches.
func (s *service) ActiveCategory(ctx context.Context, locale, currentRoute string) (string, error) {
	if locale == "" {
		return "", ErrLocaleRequired
	}

	pages, err := s.registry.List(ctx, content.ListOptions{Locale: locale})
	if err != nil {
		return "", err
	}

	currentRoute = cleanRoute(currentRoute)

	// Exact match wins over prefix matches so nested sections resolve to
	// the closest owning page.
	best := ""
	bestLen := -1
	for _, page := range pages {
		if !isActive(page.Route, currentRoute) {
			continue
		}
		if len(page.Route) > bestLen {
			best = page.Category
			bestLen = len(page.Route)
		}
	}

	return best, nil
}

// Breadcrumbs builds breadcrumb entries from the current route. Known page
// routes contribute their registered titles, deeper segments fall back to a
// prettified segment label.
func (s *service) Breadcrumbs(ctx context.Context, locale, currentRoute string) ([]Crumb, error) {
	if locale == "" {
		return nil, ErrLocaleRequired
	}

	currentRoute = cleanRoute(currentRoute)

	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentRoute == "/"}}
	if currentRoute == "/" {
		return crumbs, nil
	}

	parts := strings.Split(strings.TrimPrefix(currentRoute, "/"), "/")
	href := ""
	for i, part := range parts {
		href += "/" + part
		label := titleFromSegment(part)
		if page, err := s.registry.GetByRoute(ctx, href, locale); err == nil && page.Meta.Title != "" {
			label = page.Meta.Title
		}
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  label,
			Active: i == len(parts)-1,
		})
	}

	return crumbs, nil
}

// isActive matches exact routes or a prefix on a path boundary, so "/guides"
// is active for "/guides/setup" but not for "/guides-extra".
func isActive(itemRoute, currentRoute string) bool {
	if itemRoute == "/" {
		return currentRoute == "/"
	}
	if currentRoute == itemRoute {
		return true
	}
	return strings.HasPrefix(currentRoute, itemRoute+"/")
}

func cleanRoute(route string) string {
	if route == "" {
		return "/"
	}
	clean := path.Clean(route)
	if clean == "." || clean == "" {
		return "/"
	}
	if !strings.HasPrefix(clean, "/") {
		clean = "/" + clean
	}
	return clean
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}

// routeResolver links entries straight to their registered route.
type routeResolver struct{}

func (routeResolver) Resolve(_ context.Context, page *content.Page) (string, error) {
	if page == nil {
		return "", nil
	}
	return page.Route, nil
}
