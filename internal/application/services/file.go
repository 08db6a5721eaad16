package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filebox-api/config"
	"filebox-api/internal/application/ports"
	domain "filebox-api/internal/domain/file"
	"filebox-api/internal/domain/user"
	"filebox-api/internal/infrastructure/mq"
	"filebox-api/internal/infrastructure/storage"
)

type FileService struct {
	storage        ports.Storage
	fileRepository domain.Repository
	userRepository user.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
	cfg            config.Storage
}

func NewFileService(
	st ports.Storage,
	fileRepository domain.Repository,
	userRepository user.Repository,
	mqc ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	cfg config.Storage,
) ports.FileService {
	return &FileService{
		storage:        st,
		fileRepository: fileRepository,
		userRepository: userRepository,
		mq:             mqc,
		mCounter:       mCounter,
		logger:         logger,
		cfg:            cfg,
	}
}

func (fs *FileService) Upload(
	ctx context.Context,
	callerUUID user.UUID,
	in *multipart.FileHeader,
) (*domain.File, error) {
	mimeType := in.Header.Get("Content-Type")
	category, err := fs.validateUpload(in.Filename, mimeType, in.Size)
	if err != nil {
		return nil, err
	}

	id, err := fs.userRepository.FetchInternalID(ctx, callerUUID)
	if err != nil {
		return nil, err
	}

	if err = fs.checkQuota(ctx, id, in.Size); err != nil {
		return nil, err
	}

	name := sanitizeFileName(in.Filename)
	key := buildStorageKey(callerUUID, name, time.Now().UTC(), randomToken())

	src, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	body, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	out, err := fs.storage.Upload(ctx, storage.UploadInput{
		Key:         key,
		FileName:    name,
		ContentType: mimeType,
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	created, err := fs.fileRepository.CreateFile(ctx, id, &domain.File{
		Name:       name,
		MimeType:   mimeType,
		SizeBytes:  in.Size,
		StorageKey: out.Key,
		// Persist where the bytes actually landed, which after a router
		// fallback differs from the configured preference.
		Provider: string(out.Kind),
		Locator:  out.Locator,
	})
	if err != nil {
		// Compensating action: don't leave an orphaned storage object
		// behind a failed metadata write.
		if _, delErr := fs.storage.Delete(ctx, out.Key); delErr != nil {
			fs.logger.Error("rollback delete failed, storage object orphaned",
				zap.String("key", out.Key),
				zap.NamedError("rollback_error", delErr),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	fs.mCounter.WithLabelValues("file_uploaded_total").Inc()
	fs.mCounter.WithLabelValues("file_uploaded_" + string(category) + "_total").Inc()
	fs.publishEvent(mq.ActionCreated, callerUUID, created)

	return created, nil
}

func (fs *FileService) validateUpload(fileName, mimeType string, size int64) (domain.Category, error) {
	if utf8.RuneCountInString(fileName) > fs.cfg.MaxFileNameLen {
		return "", fmt.Errorf("%w: file name exceeds %d characters", ErrValidation, fs.cfg.MaxFileNameLen)
	}
	category, ok := domain.CategoryOf(mimeType)
	if !ok {
		return "", fmt.Errorf("%w: content type %q is not allowed", ErrValidation, mimeType)
	}
	if size < 0 {
		return "", fmt.Errorf("%w: negative file size", ErrValidation)
	}
	if size > category.MaxSizeBytes() {
		return "", fmt.Errorf("%w: %s files are capped at %d bytes", ErrValidation, category, category.MaxSizeBytes())
	}
	return category, nil
}

// checkQuota is best-effort: an infrastructure failure of the
// aggregation itself allows the upload and logs the anomaly instead of
// blocking the caller.
func (fs *FileService) checkQuota(ctx context.Context, id user.ID, size int64) error {
	total, err := fs.fileRepository.SumActiveSize(ctx, id)
	if err != nil {
		fs.logger.Warn("quota check failed, allowing upload",
			zap.Uint64("user_id", uint64(id)),
			zap.Error(err),
		)
		fs.mCounter.WithLabelValues("quota_check_failed_total").Inc()
		return nil
	}
	if total+size > fs.cfg.UserQuotaBytes {
		return fmt.Errorf("%w: %d of %d bytes used", ErrQuotaExceeded, total, fs.cfg.UserQuotaBytes)
	}
	return nil
}

func (fs *FileService) List(
	ctx context.Context,
	callerUUID user.UUID,
	category string,
) (domain.Files, domain.Stats, error) {
	var filter domain.Category
	if category != "" {
		c, ok := domain.ParseCategory(category)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
		}
		filter = c
	}

	id, err := fs.userRepository.FetchInternalID(ctx, callerUUID)
	if err != nil {
		return nil, nil, err
	}

	fls, err := fs.fileRepository.FetchFiles(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stats := fls.Stats()
	for c, s := range stats {
		fs.logger.Debug("file category stats",
			zap.Stringer("user_uuid", callerUUID),
			zap.String("category", string(c)),
			zap.Int("count", s.Count),
			zap.Int64("total_bytes", s.TotalBytes),
		)
	}

	if filter == "" {
		return fls, stats, nil
	}

	filtered := make(domain.Files, 0, len(fls))
	for _, f := range fls {
		if c, ok := domain.CategoryOf(f.MimeType); ok && c == filter {
			filtered = append(filtered, f)
		}
	}

	return filtered, stats, nil
}

// fetchOwned confirms existence before ownership, so a non-owner gets
// a forbidden answer rather than not-found.
func (fs *FileService) fetchOwned(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) (*domain.File, error) {
	f, err := fs.fileRepository.FetchFileByUUID(ctx, fileUUID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}

	id, err := fs.userRepository.FetchInternalID(ctx, callerUUID)
	if err != nil {
		return nil, err
	}
	if f.UserID != id {
		return nil, ErrForbidden
	}

	return f, nil
}

func (fs *FileService) GetByID(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) (*domain.File, error) {
	return fs.fetchOwned(ctx, callerUUID, fileUUID)
}

func (fs *FileService) Delete(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) error {
	f, err := fs.fetchOwned(ctx, callerUUID, fileUUID)
	if err != nil {
		return err
	}

	// Storage first: a genuine storage failure keeps the metadata row
	// (and its locator) so the delete can be retried later.
	removed, err := fs.storage.Delete(ctx, f.StorageKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	if !removed {
		fs.logger.Warn("storage object already absent on delete",
			zap.String("key", f.StorageKey),
			zap.Stringer("file_uuid", f.UUID),
		)
		fs.mCounter.WithLabelValues("storage_object_missing_total").Inc()
	}

	if _, err = fs.fileRepository.SoftDeleteFile(ctx, f.UUID); err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	fs.mCounter.WithLabelValues("file_deleted_total").Inc()
	fs.publishEvent(mq.ActionDeleted, callerUUID, f)

	return nil
}

// DeleteMany is deliberately sequential: per-item failures stay
// isolated and the storage backend sees bounded load.
func (fs *FileService) DeleteMany(
	ctx context.Context,
	callerUUID user.UUID,
	fileUUIDs []uuid.UUID,
) (*domain.BulkDeleteResult, error) {
	res := new(domain.BulkDeleteResult)

	for _, fileUUID := range fileUUIDs {
		if err := fs.Delete(ctx, callerUUID, fileUUID); err != nil {
			res.Failures = append(res.Failures, domain.BulkDeleteFailure{
				FileID: fileUUID,
				Reason: bulkFailureReason(err),
			})
			continue
		}
		res.DeletedCount++
	}

	return res, nil
}

func bulkFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "delete failed"
	}
}

func (fs *FileService) DownloadURL(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) (string, error) {
	f, err := fs.fetchOwned(ctx, callerUUID, fileUUID)
	if err != nil {
		return "", err
	}

	return fs.storage.PresignGet(ctx, f.StorageKey, storage.DefaultPresignExpiry)
}

func (fs *FileService) publishEvent(action string, callerUUID user.UUID, payload any) {
	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		Entity:  mq.EntityFile,
		ActorID: callerUUID.String(),
		Payload: payload,
	}
}
