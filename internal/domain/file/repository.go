package file

import (
	"context"

	"github.com/google/uuid"

	"filebox-api/internal/domain/user"
)

type Repository interface {
	FetchFiles(ctx context.Context, userID user.ID) (Files, error)
	FetchFileByUUID(ctx context.Context, fileUUID uuid.UUID) (*File, error)
	CreateFile(ctx context.Context, userID user.ID, req *File) (*File, error)
	SumActiveSize(ctx context.Context, userID user.ID) (int64, error)
	SoftDeleteFile(ctx context.Context, fileUUID uuid.UUID) (*File, error)
	SoftDeleteUserFiles(ctx context.Context, userID user.ID) error

	// Explicit escape hatches from the active-only default scope.
	FetchFileIncludingDeleted(ctx context.Context, fileUUID uuid.UUID) (*File, error)
	RestoreFile(ctx context.Context, fileUUID uuid.UUID) (*File, error)
	ForceDeleteFile(ctx context.Context, fileUUID uuid.UUID) error
}
