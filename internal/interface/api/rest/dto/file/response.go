package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		UUID       uuid.UUID `json:"uuid"`
		Name       string    `json:"name"`
		MimeType   string    `json:"mime_type"`
		SizeBytes  int64     `json:"size_bytes"`
		StorageKey string    `json:"storage_key"`
		Provider   string    `json:"provider"`
		URL        string    `json:"url"`
		CreatedAt  time.Time `json:"created_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}

	BulkDeleteRequest struct {
		FileIDs []string `json:"file_ids"`
	}
	BulkDeleteFailure struct {
		FileID string `json:"file_id"`
		Reason string `json:"reason"`
	}
	BulkDeleteResponse struct {
		DeletedCount int                 `json:"deleted_count"`
		Failures     []BulkDeleteFailure `json:"failures"`
	}

	DownloadURLResponse struct {
		URL       string `json:"url"`
		ExpiresIn int64  `json:"expires_in_seconds"`
	}
)
