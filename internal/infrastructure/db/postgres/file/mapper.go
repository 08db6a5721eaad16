package file

import (
	domain "filebox-api/internal/domain/file"
	"filebox-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	return &domain.File{
		UUID:   model.UUID,
		UserID: user.ID(model.UserID),

		Name:       model.Name,
		MimeType:   model.MimeType,
		SizeBytes:  model.SizeBytes,
		StorageKey: model.StorageKey,
		Provider:   model.Provider,
		Locator:    model.Locator,

		CreatedAt: model.CreatedAt,
		DeletedAt: model.DeletedAt,
	}
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
