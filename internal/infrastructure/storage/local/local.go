package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"filebox-api/internal/infrastructure/storage"
)

// Provider stores objects on the local filesystem under a base
// directory, nested by the storage key's own path segments.
type Provider struct {
	logger   *zap.Logger
	basePath string
}

func New(logger *zap.Logger, basePath string) *Provider {
	return &Provider{
		logger:   logger,
		basePath: basePath,
	}
}

func (p *Provider) path(key string) string {
	return filepath.Join(p.basePath, filepath.FromSlash(key))
}

func (p *Provider) Upload(_ context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	dst := p.path(in.Key)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.WriteFile(dst, in.Body, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &storage.UploadResult{
		Key:     in.Key,
		Locator: in.Key,
		Kind:    storage.KindLocal,
	}, nil
}

// Delete removes the object if present. An absent object is not an
// error: the bool reports whether anything was actually removed.
func (p *Provider) Delete(_ context.Context, key string) (bool, error) {
	if err := os.Remove(p.path(key)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete file: %w", err)
	}

	return true, nil
}

func (p *Provider) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(p.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// URL returns the locator itself; serving it is the download
// endpoint's job, not the provider's.
func (p *Provider) URL(key string) string { return key }

func (p *Provider) Kind() storage.Kind { return storage.KindLocal }
