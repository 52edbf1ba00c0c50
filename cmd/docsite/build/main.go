package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docsite/cmd/docsite/internal/bootstrap"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
	"github.com/goliatone/go-docsite/internal/generator"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("docsite build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("docsite-build", flag.ExitOnError)
	siteName := fs.String("site-name", "", "Site name rendered in page titles")
	baseURL := fs.String("base-url", "", "Canonical base URL for generated links")
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	locales := fs.String("locales", "", "Comma separated list of locales to build (defaults to all)")
	defaultLocale := fs.String("default-locale", "en", "Default locale served from the site root")
	outputDir := fs.String("output-dir", "dist", "Directory receiving generated artifacts")
	themeDir := fs.String("theme-dir", "theme", "Directory holding layout templates and assets")
	incremental := fs.Bool("incremental", false, "Skip pages whose sources are unchanged since the last build")
	feeds := fs.Bool("feeds", false, "Generate RSS and Atom feeds")
	drafts := fs.Bool("drafts", false, "Include draft documents in the build")
	dryRun := fs.Bool("dry-run", false, "Render pages without writing artifacts")

	if err := fs.Parse(args); err != nil {
		return err
	}

	localeList := bootstrap.SplitLocales(*locales)

	module, err := moduleBuilder(bootstrap.Options{
		SiteName:      *siteName,
		BaseURL:       *baseURL,
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		Recursive:     true,
		DefaultLocale: *defaultLocale,
		Locales:       localeList,
		OutputDir:     *outputDir,
		ThemeDir:      *themeDir,
		Incremental:   *incremental,
		Feeds:         *feeds,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()
	if err := module.SyncContent(ctx, *drafts); err != nil {
		return fmt.Errorf("sync content: %w", err)
	}

	var result *generator.BuildResult
	capture := func(envelope sitecmd.ResultEnvelope) {
		result = envelope.Result
	}

	gates := module.Module.FeatureGates()
	if *dryRun {
		handler := sitecmd.NewDiffSiteHandler(module.Module.Generator(), module.Logger, gates)
		if err := handler.Execute(ctx, sitecmd.DiffSiteCommand{
			Locales:        localeList,
			Drafts:         *drafts,
			ResultCallback: capture,
		}); err != nil {
			return fmt.Errorf("execute diff command: %w", err)
		}
	} else {
		handler := sitecmd.NewBuildSiteHandler(module.Module.Generator(), module.Logger, gates)
		if err := handler.Execute(ctx, sitecmd.BuildSiteCommand{
			Locales:        localeList,
			Drafts:         *drafts,
			ResultCallback: capture,
		}); err != nil {
			return fmt.Errorf("execute build command: %w", err)
		}
	}

	if result != nil {
		fmt.Fprintf(os.Stdout, "built %d pages (%d skipped) in %s\n",
			result.PagesBuilt, result.PagesSkipped, result.Duration)
	}
	return nil
}
