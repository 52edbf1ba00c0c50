package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docsite/cmd/docsite/internal/bootstrap"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runClean(os.Args[1:]); err != nil {
		log.Fatalf("docsite clean: %v", err)
	}
}

func runClean(args []string) error {
	fs := flag.NewFlagSet("docsite-clean", flag.ExitOnError)
	siteName := fs.String("site-name", "", "Site name recorded in configuration")
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	outputDir := fs.String("output-dir", "dist", "Directory receiving generated artifacts")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		SiteName:   *siteName,
		ContentDir: *contentDir,
		Recursive:  true,
		OutputDir:  *outputDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := sitecmd.NewCleanSiteHandler(module.Module.Generator(), module.Logger, module.Module.FeatureGates())
	if err := handler.Execute(context.Background(), sitecmd.CleanSiteCommand{}); err != nil {
		return fmt.Errorf("execute clean command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "generated artifacts removed")
	return nil
}
