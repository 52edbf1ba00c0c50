package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	publiccontent "github.com/goliatone/go-docsite/content"
	registry "github.com/goliatone/go-docsite/internal/content"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/search"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

var (
	ErrGeneratorRequired = errors.New("server: generator is required")
	ErrRegistryRequired  = errors.New("server: page registry is required")
)

// Config carries preview server settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	DefaultLocale   string
	AssetsDir       string
	SiteName        string
	Progress        interfaces.ProgressOptions
}

// Dependencies lists the services the preview server renders with.
type Dependencies struct {
	Generator generator.Service
	Registry  registry.Service
	Search    *search.Service
	Logger    interfaces.Logger
}

// Server renders registered pages on demand for local preview.
type Server struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	router chi.Router
	http   *http.Server
}

// New wires the preview server and its routes.
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Generator == nil {
		return nil, ErrGeneratorRequired
	}
	if deps.Registry == nil {
		return nil, ErrRegistryRequired
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
	}
	s.router = s.buildRouter()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/chrome.json", s.handleChrome)

	if s.cfg.AssetsDir != "" {
		assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Clean(s.cfg.AssetsDir))))
		r.Handle("/assets/*", assets)
	}

	r.Get("/*", s.handlePage)

	return r
}

// chromePayload is the bootstrap served to the client chrome controller.
type chromePayload struct {
	SiteName string                     `json:"site_name"`
	Progress interfaces.ProgressOptions `json:"progress"`
	Search   *search.WidgetConfig       `json:"search,omitempty"`
}

func (s *Server) handleChrome(w http.ResponseWriter, r *http.Request) {
	payload := chromePayload{
		SiteName: s.cfg.SiteName,
		Progress: s.cfg.Progress,
	}
	if s.deps.Search != nil && s.deps.Search.Enabled() {
		widget, err := s.deps.Search.Widget()
		if err != nil {
			s.logger.Warn("server.search_widget", "error", err)
		} else {
			payload.Search = &widget
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("server.encode_chrome", "error", err)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	locale, route := s.resolveRoute(r.Context(), r.URL.Path)

	if _, err := s.deps.Registry.GetByRoute(r.Context(), route, locale); err != nil {
		if errors.Is(err, publiccontent.ErrPageNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("server.lookup", "route", route, "locale", locale, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// GetByRoute already resolved the page, drafts included, so the scoped
	// render must see them too.
	result, err := s.deps.Generator.Build(r.Context(), generator.BuildOptions{
		Locales:       []string{locale},
		Routes:        []string{route},
		DryRun:        true,
		IncludeDrafts: true,
	})
	if err != nil || len(result.Rendered) == 0 {
		s.logger.Error("server.render", "route", route, "locale", locale, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(result.Rendered[0].HTML))
}

// resolveRoute splits an incoming path into locale and registry route. A
// leading segment matching a registered locale selects that locale.
func (s *Server) resolveRoute(ctx context.Context, urlPath string) (string, string) {
	locale := s.cfg.DefaultLocale
	route := strings.TrimSuffix(urlPath, "/")
	if route == "" {
		route = "/"
	}

	segments := strings.Split(strings.TrimPrefix(route, "/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		locales, err := s.deps.Registry.Locales(ctx)
		if err == nil {
			for _, code := range locales {
				if strings.EqualFold(segments[0], code) {
					locale = code
					rest := strings.Join(segments[1:], "/")
					if rest == "" {
						route = "/"
					} else {
						route = "/" + rest
					}
					break
				}
			}
		}
	}

	return locale, route
}
