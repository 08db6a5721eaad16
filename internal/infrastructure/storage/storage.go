package storage

import (
	"context"
	"errors"
	"time"
)

type Kind string

const (
	KindLocal Kind = "local"
	KindS3    Kind = "s3"
)

// DefaultPresignExpiry bounds signed URLs when the caller does not ask
// for a specific lifetime.
const DefaultPresignExpiry = time.Hour

// ErrPresignUnsupported is returned by the router when the active
// provider cannot mint signed URLs.
var ErrPresignUnsupported = errors.New("presigned URLs unsupported by active storage provider")

type (
	UploadInput struct {
		Key         string
		FileName    string
		ContentType string
		Body        []byte
	}
	UploadResult struct {
		Key     string
		Locator string
		Kind    Kind
	}
)

// Provider is the provider-agnostic byte-storage contract.
type Provider interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
	Kind() Kind
}

// Presigner is an optional provider capability.
type Presigner interface {
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	PresignPut(ctx context.Context, key string, expires time.Duration) (string, error)
}
