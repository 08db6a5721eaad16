package ports

import (
	"context"
	"time"

	"filebox-api/internal/infrastructure/storage"
)

// Storage is the provider-agnostic contract the lifecycle service
// talks to. Implemented by the storage router.
type Storage interface {
	Upload(ctx context.Context, in storage.UploadInput) (*storage.UploadResult, error)
	Delete(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
	Kind() storage.Kind
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	PresignPut(ctx context.Context, key string, expires time.Duration) (string, error)
}
