package file

import (
	"filebox-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		UUID:       fDomain.UUID,
		Name:       fDomain.Name,
		MimeType:   fDomain.MimeType,
		SizeBytes:  fDomain.SizeBytes,
		StorageKey: fDomain.StorageKey,
		Provider:   fDomain.Provider,
		URL:        fDomain.Locator,
		CreatedAt:  fDomain.CreatedAt,
	}

	return f
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToResponseBulkDelete(res file.BulkDeleteResult) BulkDeleteResponse {
	out := BulkDeleteResponse{
		DeletedCount: res.DeletedCount,
		Failures:     make([]BulkDeleteFailure, len(res.Failures)),
	}
	for idx, f := range res.Failures {
		out.Failures[idx] = BulkDeleteFailure{
			FileID: f.FileID.String(),
			Reason: f.Reason,
		}
	}

	return out
}
