// Package markdown implements the filesystem-backed Markdown pipeline:
// frontmatter extraction, goldmark rendering with optional sanitisation,
// and directory discovery with locale detection.
package markdown
