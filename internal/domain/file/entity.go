package file

import (
	"time"

	"github.com/google/uuid"

	"filebox-api/internal/domain/user"
)

type (
	File struct {
		UUID   uuid.UUID
		UserID user.ID

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

// CategoryStats is the per-category summary computed while listing.
// It is reported for observability only and never persisted.
type (
	CategoryStats struct {
		Count      int
		TotalBytes int64
	}
	Stats map[Category]CategoryStats
)

func (fs Files) Stats() Stats {
	stats := make(Stats)
	for _, f := range fs {
		c, ok := CategoryOf(f.MimeType)
		if !ok {
			continue
		}
		s := stats[c]
		s.Count++
		s.TotalBytes += f.SizeBytes
		stats[c] = s
	}
	return stats
}

type (
	BulkDeleteFailure struct {
		FileID uuid.UUID
		Reason string
	}
	BulkDeleteResult struct {
		DeletedCount int
		Failures     []BulkDeleteFailure
	}
)
