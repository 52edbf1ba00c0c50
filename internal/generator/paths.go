package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a route and locale to a pretty-URL output file. The
// default locale lives at the root, other locales under a locale prefix.
func buildOutputPath(route string, locale string, defaultLocale string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		route = "/"
	}
	clean := strings.Trim(route, " \t\r\n/")
	locale = strings.TrimSpace(locale)
	defaultLocale = strings.TrimSpace(defaultLocale)

	if locale == "" && defaultLocale != "" {
		locale = defaultLocale
	}

	if locale == "" || strings.EqualFold(locale, defaultLocale) {
		if clean == "" {
			return "index.html"
		}
		return path.Join(clean, "index.html")
	}

	segments := []string{}
	if clean != "" {
		segments = strings.Split(clean, "/")
		if len(segments) > 0 && strings.EqualFold(segments[0], locale) {
			segments = segments[1:]
		}
	}

	if len(segments) == 0 {
		return path.Join(locale, "index.html")
	}

	routePart := path.Join(segments...)
	if routePart == "" || routePart == "." {
		return path.Join(locale, "index.html")
	}
	return path.Join(locale, routePart, "index.html")
}

// localizedRoute is the public URL path a rendered page is served from. It
// applies the same locale-prefix rule buildOutputPath uses, so sitemap and
// feed links always match the written artifact.
func localizedRoute(route string, locale string, defaultLocale string) string {
	out := buildOutputPath(route, locale, defaultLocale)
	out = strings.TrimSuffix(out, "index.html")
	out = strings.Trim(out, "/")
	return "/" + out
}
