package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filebox-api/config"
	"filebox-api/internal/application/ports"
	"filebox-api/internal/domain/file"
	"filebox-api/internal/domain/user"
	"filebox-api/internal/infrastructure/mq"
	"filebox-api/internal/infrastructure/storage"
)

// --- fakes ---

type fakeUserRepo struct {
	user.Repository

	internalIDs map[user.UUID]user.ID
	idErr       error
}

func (f *fakeUserRepo) FetchInternalID(_ context.Context, uuid user.UUID) (user.ID, error) {
	if f.idErr != nil {
		return 0, f.idErr
	}
	return f.internalIDs[uuid], nil
}

type fakeFileRepo struct {
	file.Repository

	files       map[uuid.UUID]*file.File
	byUser      map[user.ID]file.Files
	sum         int64
	sumErr      error
	createErr   error
	softDelErr  error
	created     []*file.File
	softDeleted []uuid.UUID
}

func (f *fakeFileRepo) FetchFiles(_ context.Context, userID user.ID) (file.Files, error) {
	return f.byUser[userID], nil
}

func (f *fakeFileRepo) FetchFileByUUID(_ context.Context, fileUUID uuid.UUID) (*file.File, error) {
	return f.files[fileUUID], nil
}

func (f *fakeFileRepo) CreateFile(_ context.Context, userID user.ID, req *file.File) (*file.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *req
	created.UUID = uuid.New()
	created.UserID = userID
	created.CreatedAt = time.Now()
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeFileRepo) SumActiveSize(_ context.Context, _ user.ID) (int64, error) {
	return f.sum, f.sumErr
}

func (f *fakeFileRepo) SoftDeleteFile(_ context.Context, fileUUID uuid.UUID) (*file.File, error) {
	if f.softDelErr != nil {
		return nil, f.softDelErr
	}
	f.softDeleted = append(f.softDeleted, fileUUID)
	return f.files[fileUUID], nil
}

type fakeStorage struct {
	uploads   []storage.UploadInput
	deleted   []string
	uploadErr error
	deleteErr error
	delOK     bool
	kind      storage.Kind
	presigned string
}

func (f *fakeStorage) Upload(_ context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, in)
	return &storage.UploadResult{Key: in.Key, Locator: "/blobs/" + in.Key, Kind: f.kind}, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return f.delOK, nil
}

func (f *fakeStorage) Exists(_ context.Context, _ string) (bool, error) { return true, nil }
func (f *fakeStorage) URL(key string) string                            { return key }
func (f *fakeStorage) Kind() storage.Kind                               { return f.kind }

func (f *fakeStorage) PresignGet(_ context.Context, _ string, _ time.Duration) (string, error) {
	return f.presigned, nil
}

func (f *fakeStorage) PresignPut(_ context.Context, _ string, _ time.Duration) (string, error) {
	return f.presigned, nil
}

type fakeMQ struct {
	in chan mq.Event
}

func newFakeMQ() *fakeMQ                                    { return &fakeMQ{in: make(chan mq.Event, 16)} }
func (f *fakeMQ) Connect(_ context.Context, _ string) error { return nil }
func (f *fakeMQ) Init() error                               { return nil }
func (f *fakeMQ) PublisherWorker(_ context.Context)         {}
func (f *fakeMQ) GetInputChan() chan mq.Event               { return f.in }
func (f *fakeMQ) GetConn() *amqp091.Connection              { return nil }

// --- helpers ---

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "filebox", Name: "general_counters"},
		[]string{"result"},
	)
}

func defaultStorageCfg() config.Storage {
	return config.Storage{
		Provider:       "local",
		UserQuotaBytes: 500 << 20,
		MaxFileNameLen: 255,
	}
}

func newFileHeader(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

type fixture struct {
	svc      ports.FileService
	userRepo *fakeUserRepo
	fileRepo *fakeFileRepo
	storage  *fakeStorage
	mq       *fakeMQ
	caller   user.UUID
}

func newFixture(cfg config.Storage) *fixture {
	callerUUID := uuid.New()
	userRepo := &fakeUserRepo{internalIDs: map[user.UUID]user.ID{callerUUID: 7}}
	fileRepo := &fakeFileRepo{
		files:  make(map[uuid.UUID]*file.File),
		byUser: make(map[user.ID]file.Files),
	}
	st := &fakeStorage{kind: storage.KindLocal, delOK: true, presigned: "https://signed.example/object"}
	mqc := newFakeMQ()

	return &fixture{
		svc:      NewFileService(st, fileRepo, userRepo, mqc, newCounter(), zap.NewNop(), cfg),
		userRepo: userRepo,
		fileRepo: fileRepo,
		storage:  st,
		mq:       mqc,
		caller:   callerUUID,
	}
}

func (fx *fixture) seedFile(owner user.ID, key string) *file.File {
	f := &file.File{
		UUID:       uuid.New(),
		UserID:     owner,
		Name:       "notes.txt",
		MimeType:   "text/plain",
		SizeBytes:  11,
		StorageKey: key,
		Provider:   string(storage.KindLocal),
		Locator:    "/blobs/" + key,
		CreatedAt:  time.Now(),
	}
	fx.fileRepo.files[f.UUID] = f
	fx.fileRepo.byUser[owner] = append(fx.fileRepo.byUser[owner], f)
	return f
}

// --- tests ---

func TestFileServiceUpload(t *testing.T) {
	t.Run("happy path persists metadata and publishes event", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		fh := newFileHeader(t, "notes.txt", "text/plain", []byte("hello world"))

		created, err := fx.svc.Upload(context.Background(), fx.caller, fh)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "notes.txt", created.Name)
		assert.Equal(t, int64(11), created.SizeBytes)
		assert.Equal(t, string(storage.KindLocal), created.Provider)
		assert.Equal(t, user.ID(7), created.UserID)

		require.Len(t, fx.storage.uploads, 1)
		assert.Equal(t, []byte("hello world"), fx.storage.uploads[0].Body)
		assert.Contains(t, fx.storage.uploads[0].Key, "users/"+fx.caller.String()+"/")
		assert.Contains(t, fx.storage.uploads[0].Key, "notes.txt")

		e := <-fx.mq.GetInputChan()
		assert.Equal(t, mq.ActionCreated, e.Action)
		assert.Equal(t, mq.EntityFile, e.Entity)
	})

	t.Run("oversized file is rejected before any side effect", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		fh := newFileHeader(t, "big.jpg", "image/jpeg", []byte("x"))
		fh.Size = 11 << 20

		_, err := fx.svc.Upload(context.Background(), fx.caller, fh)
		require.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, fx.storage.uploads)
		assert.Empty(t, fx.fileRepo.created)
	})

	t.Run("disallowed content type is rejected", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		fh := newFileHeader(t, "tool.exe", "application/x-msdownload", []byte("MZ"))

		_, err := fx.svc.Upload(context.Background(), fx.caller, fh)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("over-length file name is rejected", func(t *testing.T) {
		cfg := defaultStorageCfg()
		cfg.MaxFileNameLen = 10
		fx := newFixture(cfg)
		fh := newFileHeader(t, "a-very-long-name.txt", "text/plain", []byte("x"))

		_, err := fx.svc.Upload(context.Background(), fx.caller, fh)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("quota exceeded blocks the upload", func(t *testing.T) {
		cfg := defaultStorageCfg()
		cfg.UserQuotaBytes = 100
		fx := newFixture(cfg)
		fx.fileRepo.sum = 95
		fh := newFileHeader(t, "notes.txt", "text/plain", []byte("hello world"))

		_, err := fx.svc.Upload(context.Background(), fx.caller, fh)
		require.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Empty(t, fx.storage.uploads)
	})

	t.Run("quota check failure allows the upload", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		fx.fileRepo.sumErr = errors.New("db down")
		fh := newFileHeader(t, "notes.txt", "text/plain", []byte("hello world"))

		created, err := fx.svc.Upload(context.Background(), fx.caller, fh)
		require.NoError(t, err)
		assert.NotNil(t, created)
	})

	t.Run("metadata failure rolls the storage object back", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		fx.fileRepo.createErr = errors.New("insert failed")
		fh := newFileHeader(t, "notes.txt", "text/plain", []byte("hello world"))

		_, err := fx.svc.Upload(context.Background(), fx.caller, fh)
		require.ErrorIs(t, err, ErrUploadFailed)
		require.Len(t, fx.storage.uploads, 1)
		require.Len(t, fx.storage.deleted, 1)
		assert.Equal(t, fx.storage.uploads[0].Key, fx.storage.deleted[0])
	})
}

func TestFileServiceGetByID(t *testing.T) {
	fx := newFixture(defaultStorageCfg())
	owned := fx.seedFile(7, "users/a/notes.txt")
	foreign := fx.seedFile(8, "users/b/other.txt")

	got, err := fx.svc.GetByID(context.Background(), fx.caller, owned.UUID)
	require.NoError(t, err)
	assert.Equal(t, owned.UUID, got.UUID)

	_, err = fx.svc.GetByID(context.Background(), fx.caller, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.svc.GetByID(context.Background(), fx.caller, foreign.UUID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestFileServiceDelete(t *testing.T) {
	t.Run("removes bytes then soft-deletes metadata", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		f := fx.seedFile(7, "users/a/notes.txt")

		require.NoError(t, fx.svc.Delete(context.Background(), fx.caller, f.UUID))
		assert.Equal(t, []string{f.StorageKey}, fx.storage.deleted)
		assert.Equal(t, []uuid.UUID{f.UUID}, fx.fileRepo.softDeleted)

		e := <-fx.mq.GetInputChan()
		assert.Equal(t, mq.ActionDeleted, e.Action)
	})

	t.Run("storage failure keeps the metadata row", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		f := fx.seedFile(7, "users/a/notes.txt")
		fx.storage.deleteErr = errors.New("backend unreachable")

		err := fx.svc.Delete(context.Background(), fx.caller, f.UUID)
		require.ErrorIs(t, err, ErrDeleteFailed)
		assert.Empty(t, fx.fileRepo.softDeleted)
	})

	t.Run("already absent object still soft-deletes", func(t *testing.T) {
		fx := newFixture(defaultStorageCfg())
		f := fx.seedFile(7, "users/a/notes.txt")
		fx.storage.delOK = false

		require.NoError(t, fx.svc.Delete(context.Background(), fx.caller, f.UUID))
		assert.Equal(t, []uuid.UUID{f.UUID}, fx.fileRepo.softDeleted)
	})
}

func TestFileServiceDeleteMany(t *testing.T) {
	fx := newFixture(defaultStorageCfg())
	owned := fx.seedFile(7, "users/a/notes.txt")
	foreign := fx.seedFile(8, "users/b/other.txt")
	missing := uuid.New()

	res, err := fx.svc.DeleteMany(context.Background(), fx.caller, []uuid.UUID{owned.UUID, missing, foreign.UUID})
	require.NoError(t, err)

	assert.Equal(t, 1, res.DeletedCount)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, missing, res.Failures[0].FileID)
	assert.Equal(t, "not found", res.Failures[0].Reason)
	assert.Equal(t, foreign.UUID, res.Failures[1].FileID)
	assert.Equal(t, "forbidden", res.Failures[1].Reason)
}

func TestFileServiceList(t *testing.T) {
	fx := newFixture(defaultStorageCfg())
	txt := fx.seedFile(7, "users/a/notes.txt")
	img := fx.seedFile(7, "users/a/cat.jpg")
	img.MimeType = "image/jpeg"
	img.SizeBytes = 2048

	t.Run("no filter returns everything with stats", func(t *testing.T) {
		fls, stats, err := fx.svc.List(context.Background(), fx.caller, "")
		require.NoError(t, err)
		assert.Len(t, fls, 2)
		assert.Equal(t, 1, stats[file.CategoryDocument].Count)
		assert.Equal(t, txt.SizeBytes, stats[file.CategoryDocument].TotalBytes)
		assert.Equal(t, 1, stats[file.CategoryImage].Count)
		assert.Equal(t, int64(2048), stats[file.CategoryImage].TotalBytes)
	})

	t.Run("category filter narrows the result", func(t *testing.T) {
		fls, _, err := fx.svc.List(context.Background(), fx.caller, "image")
		require.NoError(t, err)
		require.Len(t, fls, 1)
		assert.Equal(t, img.UUID, fls[0].UUID)
	})

	t.Run("unknown category fails validation", func(t *testing.T) {
		_, _, err := fx.svc.List(context.Background(), fx.caller, "audio")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestFileServiceDownloadURL(t *testing.T) {
	fx := newFixture(defaultStorageCfg())
	f := fx.seedFile(7, "users/a/notes.txt")

	url, err := fx.svc.DownloadURL(context.Background(), fx.caller, f.UUID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/object", url)

	_, err = fx.svc.DownloadURL(context.Background(), fx.caller, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
