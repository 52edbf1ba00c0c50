package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// NewTemplateRenderer returns a renderer backed by html/template that loads
// every .html and .tmpl file beneath baseDir.
func NewTemplateRenderer(baseDir string) (interfaces.TemplateRenderer, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("inspect template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %q is not a directory", baseDir)
	}
	return &htmlRenderer{fsys: os.DirFS(baseDir)}, nil
}

// NewTemplateRendererFS is the filesystem-agnostic variant used by tests and
// embedded themes.
func NewTemplateRendererFS(fsys fs.FS) interfaces.TemplateRenderer {
	return &htmlRenderer{fsys: fsys}
}

type htmlRenderer struct {
	fsys fs.FS

	once sync.Once
	tpl  *template.Template
	err  error

	mu     sync.RWMutex
	global map[string]any
}

func (r *htmlRenderer) ensureTemplates() (*template.Template, error) {
	r.once.Do(func() {
		var files []string
		err := fs.WalkDir(r.fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".html" && ext != ".tmpl" {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			r.err = err
			return
		}
		if len(files) == 0 {
			r.err = fmt.Errorf("no templates found")
			return
		}

		tpl := template.New("").Funcs(template.FuncMap{
			"safeHTML": func(value any) template.HTML {
				switch v := value.(type) {
				case template.HTML:
					return v
				case string:
					return template.HTML(v)
				default:
					return template.HTML(fmt.Sprint(v))
				}
			},
		})
		parsed, err := tpl.ParseFS(r.fsys, files...)
		if err != nil {
			r.err = err
			return
		}
		r.tpl = parsed
	})
	return r.tpl, r.err
}

func (r *htmlRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, r.withGlobals(data)); err != nil {
		return "", err
	}
	return writeOut(buf, out...)
}

func (r *htmlRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Parse(templateContent)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, r.withGlobals(data)); err != nil {
		return "", err
	}
	return writeOut(buf, out...)
}

// GlobalContext merges the supplied map into every subsequent render call.
func (r *htmlRenderer) GlobalContext(data any) error {
	values, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("global context must be map[string]any, got %T", data)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.global == nil {
		r.global = map[string]any{}
	}
	for key, value := range values {
		r.global[key] = value
	}
	return nil
}

// withGlobals exposes globals only for map payloads; struct contexts pass
// through untouched.
func (r *htmlRenderer) withGlobals(data any) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.global) == 0 {
		return data
	}

	values, ok := data.(map[string]any)
	if !ok {
		return data
	}
	merged := make(map[string]any, len(r.global)+len(values))
	for key, value := range r.global {
		merged[key] = value
	}
	for key, value := range values {
		merged[key] = value
	}
	return merged
}

func writeOut(buf bytes.Buffer, out ...io.Writer) (string, error) {
	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return rendered, err
		}
	}
	return rendered, nil
}
