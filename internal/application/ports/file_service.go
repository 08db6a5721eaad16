package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"filebox-api/internal/domain/file"
	"filebox-api/internal/domain/user"
)

type FileService interface {
	Upload(ctx context.Context, callerUUID user.UUID, in *multipart.FileHeader) (*file.File, error)
	List(ctx context.Context, callerUUID user.UUID, category string) (file.Files, file.Stats, error)
	GetByID(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) (*file.File, error)
	Delete(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) error
	DeleteMany(ctx context.Context, callerUUID user.UUID, fileUUIDs []uuid.UUID) (*file.BulkDeleteResult, error)
	DownloadURL(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) (string, error)
}
