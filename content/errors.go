package content

import "errors"

var (
	ErrSlugRequired           = errors.New("content: slug is required")
	ErrSlugInvalid            = errors.New("content: slug contains invalid characters")
	ErrRouteRequired          = errors.New("content: route is required")
	ErrRouteConflict          = errors.New("content: route already registered")
	ErrPageNotFound           = errors.New("content: page not found")
	ErrLocaleRequired         = errors.New("content: locale is required")
	ErrUnknownLocale          = errors.New("content: unknown locale")
	ErrFrontMatterInvalid     = errors.New("content: front matter validation failed")
	ErrDocumentBodyEmpty      = errors.New("content: document body is empty")
	ErrDraftExcluded          = errors.New("content: page is a draft")
	ErrRegistryUnavailable    = errors.New("content: registry unavailable")
	ErrCategoryLookupDisabled = errors.New("content: category lookup disabled")
)
