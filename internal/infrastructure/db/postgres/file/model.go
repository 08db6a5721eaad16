package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID     uint64
		UUID   uuid.UUID
		UserID uint64

		Name       string
		MimeType   string
		SizeBytes  int64
		StorageKey string
		Provider   string
		Locator    string

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Files []*File
)
