package interfaces

import "context"

// ArtifactStorage abstracts where generated site artifacts land. The
// filesystem implementation is the default; tests supply in-memory doubles.
type ArtifactStorage interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}
