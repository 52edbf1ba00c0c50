package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// artifactWriter abstracts storage specifics for generator outputs.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte) error
}

func newArtifactWriter(storage interfaces.ArtifactStorage) artifactWriter {
	if storage == nil {
		return noopWriter{}
	}
	return &storageWriter{storage: storage}
}

type storageWriter struct {
	storage interfaces.ArtifactStorage
}

func (w *storageWriter) EnsureDir(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return w.storage.EnsureDir(ctx, path)
}

func (w *storageWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("generator: write requires path")
	}
	return w.storage.WriteFile(ctx, path, data)
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, string, []byte) error { return nil }

// FilesystemStorage writes artifacts beneath a root directory.
type FilesystemStorage struct {
	root string
}

// NewFilesystemStorage returns an ArtifactStorage rooted at dir.
func NewFilesystemStorage(root string) *FilesystemStorage {
	return &FilesystemStorage{root: root}
}

func (s *FilesystemStorage) resolve(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimLeft(path, "/")))
}

func (s *FilesystemStorage) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(s.resolve(path), 0o755)
}

func (s *FilesystemStorage) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

func (s *FilesystemStorage) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.resolve(path))
}

func (s *FilesystemStorage) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.RemoveAll(s.resolve(path))
}
