package seo

import (
	"fmt"
	"html/template"
	"strings"
)

// HeadTags renders the resolved metadata as head elements ready for layout
// templates that prefer a single block over individual fields.
func HeadTags(meta Meta) template.HTML {
	var b strings.Builder

	writeMeta := func(attr, name, content string) {
		if content == "" {
			return
		}
		fmt.Fprintf(&b, "<meta %s=\"%s\" content=\"%s\">\n", attr, name, template.HTMLEscapeString(content))
	}

	writeMeta("name", "description", meta.Description)
	if len(meta.Keywords) > 0 {
		writeMeta("name", "keywords", strings.Join(meta.Keywords, ", "))
	}
	if meta.Canonical != "" {
		fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", template.HTMLEscapeString(meta.Canonical))
	}

	writeMeta("property", "og:title", meta.OG.Title)
	writeMeta("property", "og:description", meta.OG.Description)
	writeMeta("property", "og:type", meta.OG.Type)
	writeMeta("property", "og:image", meta.OG.Image)
	writeMeta("property", "og:url", meta.OG.URL)

	writeMeta("name", "twitter:card", meta.Twitter.Card)
	writeMeta("name", "twitter:site", meta.Twitter.Site)
	writeMeta("name", "twitter:image", meta.Twitter.Image)

	return template.HTML(b.String())
}
