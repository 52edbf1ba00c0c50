package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ThemingConfig selects the theme applied to generated pages.
type ThemingConfig struct {
	ThemeDir       string
	DefaultTheme   string
	DefaultVariant string
}

type themeManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsThemeManifestLoader struct{}

func (fsThemeManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}

	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// ThemeSelector loads the configured theme manifest and exposes its layout
// selection and asset inventory.
type ThemeSelector struct {
	registry       *gotheme.MemoryRegistry
	loader         themeManifestLoader
	themeDir       string
	defaultTheme   string
	defaultVariant string

	mu       sync.Mutex
	manifest *gotheme.Manifest
}

// NewThemeSelector constructs a selector for the configured theme directory.
func NewThemeSelector(cfg ThemingConfig, loader themeManifestLoader) *ThemeSelector {
	if loader == nil {
		loader = fsThemeManifestLoader{}
	}
	return &ThemeSelector{
		registry:       gotheme.NewRegistry(),
		loader:         loader,
		themeDir:       strings.TrimSpace(cfg.ThemeDir),
		defaultTheme:   strings.TrimSpace(cfg.DefaultTheme),
		defaultVariant: strings.TrimSpace(cfg.DefaultVariant),
	}
}

// Selection resolves the configured theme and variant.
func (s *ThemeSelector) Selection(variant string) (*gotheme.Selection, error) {
	manifest, err := s.ensureManifest()
	if err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   s.defaultTheme,
		DefaultVariant: s.defaultVariant,
	}

	resolvedVariant := strings.TrimSpace(variant)
	if resolvedVariant == "" {
		resolvedVariant = s.defaultVariant
	}

	selection, err := selector.Select(manifest.Name, resolvedVariant)
	if err != nil {
		return nil, fmt.Errorf("select theme %s: %w", manifest.Name, err)
	}
	return selection, nil
}

// Assets lists theme asset files, variant overrides merged over the base set.
func (s *ThemeSelector) Assets() ([]string, error) {
	manifest, err := s.ensureManifest()
	if err != nil {
		return nil, err
	}

	merged := map[string]string{}
	for key, file := range manifest.Assets.Files {
		merged[key] = file
	}
	if s.defaultVariant != "" {
		if variant, ok := manifest.Variants[s.defaultVariant]; ok {
			for key, file := range variant.Assets.Files {
				merged[key] = file
			}
		}
	}

	assets := make([]string, 0, len(merged))
	for _, file := range merged {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		assets = append(assets, filepath.ToSlash(file))
	}
	sort.Strings(assets)
	return assets, nil
}

// Open reads an asset file from the theme directory.
func (s *ThemeSelector) Open(asset string) ([]byte, error) {
	if s.themeDir == "" {
		return nil, fmt.Errorf("generator: theme directory not configured")
	}
	cleaned := filepath.Clean(strings.TrimLeft(strings.TrimSpace(asset), "/"))
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return nil, fmt.Errorf("generator: invalid theme asset %q", asset)
	}
	return os.ReadFile(filepath.Join(s.themeDir, filepath.FromSlash(cleaned)))
}

func (s *ThemeSelector) ensureManifest() (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest != nil {
		return s.manifest, nil
	}

	manifest, err := s.loader.Load(s.themeDir)
	if err != nil {
		return nil, fmt.Errorf("load theme manifest from %s: %w", s.themeDir, err)
	}

	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" {
		normalized.Name = s.defaultTheme
	}
	if normalized.Name == "" {
		return nil, fmt.Errorf("theme name required for manifest registration")
	}

	if err := s.registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("register theme manifest: %w", err)
	}
	s.manifest = &normalized
	return s.manifest, nil
}
