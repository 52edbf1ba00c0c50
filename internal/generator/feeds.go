package generator

import (
	"context"
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
	"time"

	publiccontent "github.com/goliatone/go-docsite/content"
)

const maxFeedItems = 100

type feedItem struct {
	Title     string
	Summary   string
	Link      string
	GUID      string
	UpdatedAt time.Time
}

type feedDocument struct {
	Locale string
	Items  []feedItem
}

func (s *service) buildFeedDocuments(pages []*publiccontent.Page, generatedAt time.Time) []feedDocument {
	byLocale := make(map[string]*feedDocument)
	seen := make(map[string]map[string]struct{})

	for _, page := range pages {
		route := strings.TrimSpace(page.Route)
		if route == "" {
			continue
		}

		doc := byLocale[page.Locale]
		if doc == nil {
			doc = &feedDocument{Locale: page.Locale}
			byLocale[page.Locale] = doc
			seen[page.Locale] = map[string]struct{}{}
		}

		guid := fmt.Sprintf("%s:%s", page.Locale, route)
		if _, ok := seen[page.Locale][guid]; ok {
			continue
		}
		seen[page.Locale][guid] = struct{}{}

		title := strings.TrimSpace(page.Meta.Title)
		if title == "" {
			title = route
		}

		updatedAt := page.LastModified
		if updatedAt.IsZero() {
			updatedAt = generatedAt
		}

		doc.Items = append(doc.Items, feedItem{
			Title:     title,
			Summary:   strings.TrimSpace(page.Meta.Description),
			Link:      absoluteURL(s.cfg.BaseURL, localizedRoute(route, page.Locale, s.cfg.DefaultLocale)),
			GUID:      guid,
			UpdatedAt: updatedAt,
		})
	}

	docs := make([]feedDocument, 0, len(byLocale))
	for _, doc := range byLocale {
		if len(doc.Items) == 0 {
			continue
		}
		sort.Slice(doc.Items, func(i, j int) bool {
			if doc.Items[i].UpdatedAt.Equal(doc.Items[j].UpdatedAt) {
				return doc.Items[i].GUID < doc.Items[j].GUID
			}
			return doc.Items[i].UpdatedAt.After(doc.Items[j].UpdatedAt)
		})
		if len(doc.Items) > maxFeedItems {
			doc.Items = append([]feedItem(nil), doc.Items[:maxFeedItems]...)
		}
		docs = append(docs, *doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Locale < docs[j].Locale
	})
	return docs
}

func (s *service) writeFeeds(
	ctx context.Context,
	writer artifactWriter,
	siteMeta SiteMetadata,
	pages []*publiccontent.Page,
	generatedAt time.Time,
	baseDir string,
) (int, error) {
	docs := s.buildFeedDocuments(pages, generatedAt)
	if len(docs) == 0 {
		return 0, nil
	}

	dirCache := map[string]struct{}{}
	total := 0
	for _, doc := range docs {
		rssContent := buildRSSFeed(siteMeta, doc, generatedAt)
		rssPath := joinOutputPath(baseDir, path.Join("feeds", fmt.Sprintf("%s.rss.xml", doc.Locale)))
		if err := ensureDir(ctx, writer, dirCache, path.Dir(rssPath)); err != nil {
			return total, err
		}
		if err := writer.WriteFile(ctx, rssPath, []byte(rssContent)); err != nil {
			return total, err
		}
		total++

		atomContent := buildAtomFeed(siteMeta, doc, generatedAt)
		atomPath := joinOutputPath(baseDir, path.Join("feeds", fmt.Sprintf("%s.atom.xml", doc.Locale)))
		if err := writer.WriteFile(ctx, atomPath, []byte(atomContent)); err != nil {
			return total, err
		}
		total++

		if strings.EqualFold(doc.Locale, siteMeta.DefaultLocale) {
			if err := writer.WriteFile(ctx, joinOutputPath(baseDir, "feed.xml"), []byte(rssContent)); err != nil {
				return total, err
			}
			if err := writer.WriteFile(ctx, joinOutputPath(baseDir, "feed.atom.xml"), []byte(atomContent)); err != nil {
				return total, err
			}
			total += 2
		}
	}
	return total, nil
}

func buildRSSFeed(site SiteMetadata, doc feedDocument, generatedAt time.Time) string {
	baseLink := baseURLWithFallback(site.BaseURL)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(site.Name)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(site.Tagline)))
	builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(doc.Locale)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range doc.Items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid isPermaLink=\"false\">%s</guid>\n", escapeXML(item.GUID)))
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.UpdatedAt.UTC().Format(time.RFC1123Z)))
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString("</rss>\n")
	return builder.String()
}

func buildAtomFeed(site SiteMetadata, doc feedDocument, generatedAt time.Time) string {
	baseLink := baseURLWithFallback(site.BaseURL)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(site.Name)))
	builder.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(baseLink+"/")))
	builder.WriteString(fmt.Sprintf("  <link href=\"%s\"/>\n", escapeXML(baseLink)))
	builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", generatedAt.UTC().Format(time.RFC3339)))
	for _, item := range doc.Items {
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("    <link href=\"%s\"/>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", item.UpdatedAt.UTC().Format(time.RFC3339)))
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("    <summary>%s</summary>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("  </entry>\n")
	}
	builder.WriteString("</feed>\n")
	return builder.String()
}

func absoluteURL(baseURL, route string) string {
	base := baseURLWithFallback(baseURL)
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}

func baseURLWithFallback(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return "http://localhost"
	}
	return base
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
