package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-docsite/internal/generator"
)

const (
	buildSiteMessageType   = "docsite.site.build"
	diffSiteMessageType    = "docsite.site.diff"
	cleanSiteMessageType   = "docsite.site.clean"
	syncContentMessageType = "docsite.content.sync"
)

// ResultCallback receives build results produced by generator operations. The
// callback is optional and is invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command execution.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a generator build using the provided filters.
type BuildSiteCommand struct {
	Locales        []string       `json:"locales,omitempty"`
	Routes         []string       `json:"routes,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	Drafts         bool           `json:"drafts,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures locales and routes are well-formed.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, locale := range m.Locales {
		if strings.TrimSpace(locale) == "" {
			errs["locales"] = validation.NewError("docsite.site.build.locale_invalid", "locales must not contain empty values")
			break
		}
	}
	for _, route := range m.Routes {
		if !strings.HasPrefix(strings.TrimSpace(route), "/") {
			errs["routes"] = validation.NewError("docsite.site.build.route_invalid", "routes must start with a slash")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DiffSiteCommand performs a dry-run build to surface differences without
// writing artifacts.
type DiffSiteCommand struct {
	Locales        []string       `json:"locales,omitempty"`
	Routes         []string       `json:"routes,omitempty"`
	Drafts         bool           `json:"drafts,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (DiffSiteCommand) Type() string { return diffSiteMessageType }

// Validate ensures locales and routes are well-formed.
func (m DiffSiteCommand) Validate() error {
	return BuildSiteCommand{Locales: m.Locales, Routes: m.Routes}.Validate()
}

// CleanSiteCommand clears generator artifacts from the output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// SyncContentCommand reloads markdown sources into the page registry.
type SyncContentCommand struct {
	Dir       string   `json:"dir,omitempty"`
	Locales   []string `json:"locales,omitempty"`
	Recursive bool     `json:"recursive,omitempty"`
	Drafts    bool     `json:"drafts,omitempty"`
}

// Type implements command.Message.
func (SyncContentCommand) Type() string { return syncContentMessageType }

// Validate ensures locales are well-formed.
func (m SyncContentCommand) Validate() error {
	errs := validation.Errors{}
	for _, locale := range m.Locales {
		if strings.TrimSpace(locale) == "" {
			errs["locales"] = validation.NewError("docsite.content.sync.locale_invalid", "locales must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}
