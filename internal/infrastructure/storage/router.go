package storage

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Router resolves one provider at startup and hides the selection from
// callers. It always keeps a reference to the local provider: uploads
// that fail on the remote are retried there, and delete/exists checks
// fall through to it because earlier uploads may have landed locally
// after a fallback.
type Router struct {
	logger *zap.Logger
	active Provider
	local  Provider
}

// NewRouter picks the active provider once. remote may be nil (missing
// or incomplete credentials); preferRemote with a nil remote is a
// downgrade and gets logged.
func NewRouter(logger *zap.Logger, preferRemote bool, remote, local Provider) *Router {
	active := local
	if preferRemote {
		if remote != nil {
			active = remote
		} else {
			logger.Warn("remote storage requested but credentials incomplete, downgrading to local")
		}
	}

	logger.Info("storage provider selected", zap.String("kind", string(active.Kind())))

	return &Router{
		logger: logger,
		active: active,
		local:  local,
	}
}

// Upload tries the active provider and retries exactly once against
// local on failure. Callers must persist the Kind/Locator actually
// returned, never the configured preference.
func (r *Router) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	out, err := r.active.Upload(ctx, in)
	if err == nil {
		return out, nil
	}
	if r.active == r.local {
		return nil, err
	}

	r.logger.Warn("active storage upload failed, falling back to local",
		zap.String("key", in.Key),
		zap.Error(err),
	)

	return r.local.Upload(ctx, in)
}

func (r *Router) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := r.active.Delete(ctx, key)
	if err == nil && removed {
		return true, nil
	}
	if r.active == r.local {
		return removed, err
	}
	if err != nil {
		r.logger.Warn("active storage delete failed, checking local",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return r.local.Delete(ctx, key)
}

func (r *Router) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := r.active.Exists(ctx, key)
	if err == nil && exists {
		return true, nil
	}
	if r.active == r.local {
		return exists, err
	}

	return r.local.Exists(ctx, key)
}

func (r *Router) URL(key string) string { return r.active.URL(key) }

func (r *Router) Kind() Kind { return r.active.Kind() }

func (r *Router) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	p, ok := r.active.(Presigner)
	if !ok {
		return "", ErrPresignUnsupported
	}
	return p.PresignGet(ctx, key, expires)
}

func (r *Router) PresignPut(ctx context.Context, key string, expires time.Duration) (string, error) {
	p, ok := r.active.(Presigner)
	if !ok {
		return "", ErrPresignUnsupported
	}
	return p.PresignPut(ctx, key, expires)
}
