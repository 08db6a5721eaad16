package file

import (
	"fmt"

	"filebox-api/internal/infrastructure/db/postgres/softdelete"
)

const fileColumns = "id, uuid, user_id, name, mime_type, size_bytes, storage_key, provider, locator, created_at, deleted_at"

var (
	SelectFilesByUser = fmt.Sprintf(
		`SELECT %s FROM files WHERE %s ORDER BY created_at DESC`,
		fileColumns, softdelete.Scope("user_id = $1"),
	)
	SelectFileByUUID = fmt.Sprintf(
		`SELECT %s FROM files WHERE %s`,
		fileColumns, softdelete.Scope("uuid = $1"),
	)
	SelectFileAnyByUUID = fmt.Sprintf(
		`SELECT %s FROM files WHERE %s`,
		fileColumns, softdelete.Any("uuid = $1"),
	)
	// Aggregates get the same active-only injection as reads.
	SumActiveSizeByUser = fmt.Sprintf(
		`SELECT COALESCE(SUM(size_bytes), 0) FROM files WHERE %s`,
		softdelete.Scope("user_id = $1"),
	)

	InsertFile = fmt.Sprintf(`
		INSERT INTO files (user_id, name, mime_type, size_bytes, storage_key, provider, locator)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		fileColumns,
	)

	SoftDeleteFileByUUID  = softdelete.SoftDelete("files", "uuid = $1", fileColumns)
	SoftDeleteFilesByUser = softdelete.SoftDeleteAll("files", "user_id = $1")
	RestoreFileByUUID     = softdelete.Restore("files", "uuid = $1", fileColumns)
	ForceDeleteFileByUUID = softdelete.ForceDelete("files", "uuid = $1")
)
