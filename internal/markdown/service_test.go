package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	filesystem := fstest.MapFS{
		"en/quickstart.md": &fstest.MapFile{
			Data: []byte(`---
title: Quickstart
description: Get up and running.
category: Tutorial
weight: 1
---

# Quickstart

First steps.
`),
		},
		"en/validation.md": &fstest.MapFile{
			Data: []byte(`---
title: Validation
category: Docs
weight: 3
---

Validate request payloads.
`),
		},
		"es/quickstart.md": &fstest.MapFile{
			Data: []byte(`---
title: Comienzo
category: Tutorial
---

Primeros pasos.
`),
		},
		"en/notes.txt": &fstest.MapFile{Data: []byte("not markdown")},
	}

	return NewServiceWithFS(Config{
		DefaultLocale: "en",
		Locales:       []string{"en", "es"},
		Pattern:       "*.md",
		Recursive:     true,
	}, nil, filesystem)
}

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Load(context.Background(), "en/quickstart.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.Locale != "en" {
		t.Fatalf("expected locale en, got %s", doc.Locale)
	}
	if doc.FrontMatter.Title != "Quickstart" {
		t.Fatalf("expected frontmatter title, got %q", doc.FrontMatter.Title)
	}
	if doc.FrontMatter.Category != "Tutorial" {
		t.Fatalf("expected category Tutorial, got %q", doc.FrontMatter.Category)
	}
	if doc.FrontMatter.Weight != 1 {
		t.Fatalf("expected weight 1, got %d", doc.FrontMatter.Weight)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatal("expected BodyHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatal("expected checksum to be populated")
	}
}

func TestServiceLoadDirectory_MixedLocales(t *testing.T) {
	svc := newTestService(t)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	locales := map[string]int{}
	for _, doc := range docs {
		locales[doc.Locale]++
	}
	if locales["en"] != 2 || locales["es"] != 1 {
		t.Fatalf("unexpected locale distribution: %v", locales)
	}
}

func TestServiceLoadDirectory_NonRecursive(t *testing.T) {
	filesystem := fstest.MapFS{
		"index.md":        &fstest.MapFile{Data: []byte("---\ntitle: Home\n---\n\nWelcome.\n")},
		"nested/child.md": &fstest.MapFile{Data: []byte("---\ntitle: Child\n---\n\nNested.\n")},
	}
	svc := NewServiceWithFS(Config{DefaultLocale: "en", Recursive: false}, nil, filesystem)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].FrontMatter.Title != "Home" {
		t.Fatalf("expected root document, got %s", docs[0].FilePath)
	}
}

func TestServiceRenderDocument(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Load(context.Background(), "en/validation.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	html, err := svc.RenderDocument(context.Background(), doc, interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !strings.Contains(string(html), "Validate request payloads.") {
		t.Fatalf("expected rendered body, got %s", html)
	}
}
