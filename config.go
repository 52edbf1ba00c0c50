package docsite

import "github.com/goliatone/go-docsite/internal/runtimeconfig"

var (
	ErrSiteNameRequired           = runtimeconfig.ErrSiteNameRequired
	ErrBaseURLInvalid             = runtimeconfig.ErrBaseURLInvalid
	ErrContentDirRequired         = runtimeconfig.ErrContentDirRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrSearchCredentialsRequired  = runtimeconfig.ErrSearchCredentialsRequired
	ErrProgressFractionInvalid    = runtimeconfig.ErrProgressFractionInvalid
	ErrProgressEasingInvalid      = runtimeconfig.ErrProgressEasingInvalid
	ErrNavbarLinkInvalid          = runtimeconfig.ErrNavbarLinkInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	SiteConfig           = runtimeconfig.SiteConfig
	SEOConfig            = runtimeconfig.SEOConfig
	SocialLink           = runtimeconfig.SocialLink
	NavbarLink           = runtimeconfig.NavbarLink
	SearchConfig         = runtimeconfig.SearchConfig
	ProgressConfig       = runtimeconfig.ProgressConfig
	NavigationConfig     = runtimeconfig.NavigationConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	ServerConfig         = runtimeconfig.ServerConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
