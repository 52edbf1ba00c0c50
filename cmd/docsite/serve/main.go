package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-docsite/cmd/docsite/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runServe(os.Args[1:]); err != nil {
		log.Fatalf("docsite serve: %v", err)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("docsite-serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Address the preview server listens on")
	siteName := fs.String("site-name", "", "Site name rendered in page titles")
	baseURL := fs.String("base-url", "", "Canonical base URL for generated links")
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	locales := fs.String("locales", "", "Comma separated list of locales to serve")
	defaultLocale := fs.String("default-locale", "en", "Default locale served from the site root")
	themeDir := fs.String("theme-dir", "theme", "Directory holding layout templates and assets")
	drafts := fs.Bool("drafts", true, "Include draft documents in the preview")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		SiteName:      *siteName,
		BaseURL:       *baseURL,
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		Recursive:     true,
		DefaultLocale: *defaultLocale,
		Locales:       bootstrap.SplitLocales(*locales),
		ThemeDir:      *themeDir,
		ServerAddr:    *addr,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.SyncContent(ctx, *drafts); err != nil {
		return fmt.Errorf("sync content: %w", err)
	}

	srv, err := module.Module.Server()
	if err != nil {
		return fmt.Errorf("configure preview server: %w", err)
	}

	module.Logger.Info("preview.listen", "addr", *addr)
	return srv.Start(ctx)
}
