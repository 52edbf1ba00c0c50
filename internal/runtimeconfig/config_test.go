package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-docsite/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresSiteName(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.Name = "  "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrSiteNameRequired) {
		t.Fatalf("expected ErrSiteNameRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsMalformedBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.BaseURL = "not a url"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrBaseURLInvalid) {
		t.Fatalf("expected ErrBaseURLInvalid, got %v", err)
	}
}

func TestConfigValidate_AllowsDisabledGeneratorWithoutOutput(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.OutputDir = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresOutputDirWhenGeneratorEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrGeneratorOutputDirRequired) {
		t.Fatalf("expected ErrGeneratorOutputDirRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresSearchCredentialsWhenSearchEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Search = true
	cfg.Search.AppID = "APP123"
	cfg.Search.APIKey = ""
	cfg.Search.IndexName = "docs"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrSearchCredentialsRequired) {
		t.Fatalf("expected ErrSearchCredentialsRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsProgressFractionOutOfRange(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Progress.MinimumFraction = 1.2

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrProgressFractionInvalid) {
		t.Fatalf("expected ErrProgressFractionInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownEasing(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Progress.Easing = "bouncy"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrProgressEasingInvalid) {
		t.Fatalf("expected ErrProgressEasingInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNavbarLinkWithoutHref(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Navbar = []runtimeconfig.NavbarLink{{Label: "Docs"}}

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrNavbarLinkInvalid) {
		t.Fatalf("expected ErrNavbarLinkInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
