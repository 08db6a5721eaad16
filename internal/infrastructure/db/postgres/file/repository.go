package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"filebox-api/internal/domain/file"
	"filebox-api/internal/domain/user"
	"filebox-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) file.Repository {
	return &Repository{db: db}
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.UUID,
		&f.UserID,

		&f.Name,
		&f.MimeType,
		&f.SizeBytes,
		&f.StorageKey,
		&f.Provider,
		&f.Locator,

		&f.CreatedAt,
		&f.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *Repository) FetchFiles(ctx context.Context, userID user.ID) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectFilesByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.UserID,

			&f.Name,
			&f.MimeType,
			&f.SizeBytes,
			&f.StorageKey,
			&f.Provider,
			&f.Locator,

			&f.CreatedAt,
			&f.DeletedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFileByUUID(ctx context.Context, fileUUID uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByUUID, fileUUID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) CreateFile(ctx context.Context, userID user.ID, req *file.File) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(
		ctx,
		InsertFile,
		userID, req.Name, req.MimeType, req.SizeBytes, req.StorageKey, req.Provider, req.Locator,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) SumActiveSize(ctx context.Context, userID user.ID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, SumActiveSizeByUser, userID).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *Repository) SoftDeleteFile(ctx context.Context, fileUUID uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SoftDeleteFileByUUID, fileUUID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) SoftDeleteUserFiles(ctx context.Context, userID user.ID) error {
	_, err := r.db.Exec(ctx, SoftDeleteFilesByUser, userID)
	return err
}

func (r *Repository) FetchFileIncludingDeleted(ctx context.Context, fileUUID uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileAnyByUUID, fileUUID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) RestoreFile(ctx context.Context, fileUUID uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, RestoreFileByUUID, fileUUID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) ForceDeleteFile(ctx context.Context, fileUUID uuid.UUID) error {
	_, err := r.db.Exec(ctx, ForceDeleteFileByUUID, fileUUID.String())
	return err
}
