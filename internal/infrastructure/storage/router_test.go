package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	kind       Kind
	uploadErr  error
	deleteErr  error
	existsErr  error
	objects    map[string][]byte
	deleteBool bool
}

func newFakeProvider(kind Kind) *fakeProvider {
	return &fakeProvider{kind: kind, objects: map[string][]byte{}}
}

func (f *fakeProvider) Upload(_ context.Context, in UploadInput) (*UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.objects[in.Key] = in.Body
	return &UploadResult{Key: in.Key, Locator: in.Key, Kind: f.kind}, nil
}

func (f *fakeProvider) Delete(_ context.Context, key string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.objects[key]; !ok {
		return false, nil
	}
	delete(f.objects, key)
	return true, nil
}

func (f *fakeProvider) Exists(_ context.Context, key string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeProvider) URL(key string) string { return string(f.kind) + "://" + key }
func (f *fakeProvider) Kind() Kind            { return f.kind }

type fakePresigner struct {
	*fakeProvider
}

func (f *fakePresigner) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}
func (f *fakePresigner) PresignPut(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example/put/" + key, nil
}

func TestNewRouter_Selection(t *testing.T) {
	local := newFakeProvider(KindLocal)
	remote := newFakeProvider(KindS3)

	tests := []struct {
		name         string
		preferRemote bool
		remote       Provider
		wantKind     Kind
	}{
		{"remote preferred and available", true, remote, KindS3},
		{"remote preferred but unavailable", true, nil, KindLocal},
		{"local preferred", false, remote, KindLocal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(zap.NewNop(), tt.preferRemote, tt.remote, local)
			assert.Equal(t, tt.wantKind, r.Kind())
		})
	}
}

func TestRouter_UploadFallsBackToLocal(t *testing.T) {
	local := newFakeProvider(KindLocal)
	remote := newFakeProvider(KindS3)
	remote.uploadErr = errors.New("bucket unreachable")

	r := NewRouter(zap.NewNop(), true, remote, local)

	out, err := r.Upload(context.Background(), UploadInput{Key: "k", Body: []byte("x")})
	require.NoError(t, err)

	// The returned kind reflects where the bytes actually landed.
	assert.Equal(t, KindLocal, out.Kind)
	assert.Contains(t, local.objects, "k")
	assert.NotContains(t, remote.objects, "k")
}

func TestRouter_UploadNoRetryWhenLocalActive(t *testing.T) {
	local := newFakeProvider(KindLocal)
	local.uploadErr = errors.New("disk full")

	r := NewRouter(zap.NewNop(), false, nil, local)

	_, err := r.Upload(context.Background(), UploadInput{Key: "k", Body: []byte("x")})
	require.Error(t, err)
}

func TestRouter_DeleteFallsThroughToLocal(t *testing.T) {
	local := newFakeProvider(KindLocal)
	remote := newFakeProvider(KindS3)
	// Object landed locally during an earlier upload fallback.
	local.objects["k"] = []byte("x")

	r := NewRouter(zap.NewNop(), true, remote, local)

	removed, err := r.Delete(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NotContains(t, local.objects, "k")
}

func TestRouter_DeleteRemoteErrorChecksLocal(t *testing.T) {
	local := newFakeProvider(KindLocal)
	remote := newFakeProvider(KindS3)
	remote.deleteErr = errors.New("network down")
	local.objects["k"] = []byte("x")

	r := NewRouter(zap.NewNop(), true, remote, local)

	removed, err := r.Delete(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestRouter_ExistsFallsThroughToLocal(t *testing.T) {
	local := newFakeProvider(KindLocal)
	remote := newFakeProvider(KindS3)
	local.objects["k"] = []byte("x")

	r := NewRouter(zap.NewNop(), true, remote, local)

	exists, err := r.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRouter_PresignUnsupportedOnLocal(t *testing.T) {
	local := newFakeProvider(KindLocal)
	r := NewRouter(zap.NewNop(), false, nil, local)

	_, err := r.PresignGet(context.Background(), "k", time.Hour)
	assert.ErrorIs(t, err, ErrPresignUnsupported)

	_, err = r.PresignPut(context.Background(), "k", time.Hour)
	assert.ErrorIs(t, err, ErrPresignUnsupported)
}

func TestRouter_PresignDelegatesToCapableProvider(t *testing.T) {
	local := newFakeProvider(KindLocal)
	remote := &fakePresigner{newFakeProvider(KindS3)}

	r := NewRouter(zap.NewNop(), true, remote, local)

	url, err := r.PresignGet(context.Background(), "k", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/k", url)
}
