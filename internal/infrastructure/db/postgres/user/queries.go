package user

import (
	"fmt"

	"filebox-api/internal/infrastructure/db/postgres/softdelete"
)

const userColumns = "id, uuid, email, password_hash, role, display_name, created_at, updated_at, deleted_at"

// Every read is scoped through softdelete.Scope and every delete-shaped
// statement is built by the softdelete package, so the tombstone rules
// apply uniformly no matter which operation reaches the table.
var (
	SelectUserByUUID = fmt.Sprintf(
		`SELECT %s FROM users WHERE %s`,
		userColumns, softdelete.Scope("uuid = $1"),
	)
	SelectUserByEmail = fmt.Sprintf(
		`SELECT %s FROM users WHERE %s`,
		userColumns, softdelete.Scope("email = $1"),
	)
	SelectUserAnyByUUID = fmt.Sprintf(
		`SELECT %s FROM users WHERE %s`,
		userColumns, softdelete.Any("uuid = $1"),
	)
	SelectIdByUUID = fmt.Sprintf(
		`SELECT id FROM users WHERE %s`,
		softdelete.Scope("uuid = $1::uuid"),
	)

	InsertUser = fmt.Sprintf(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING %s`,
		userColumns,
	)
	UpdateUserByUUID = fmt.Sprintf(`
		UPDATE users
		SET email = $1,
		    display_name = $2,
		    updated_at = now()
		WHERE %s
		RETURNING %s`,
		softdelete.Scope("uuid = $3"), userColumns,
	)

	SoftDeleteUserByID  = softdelete.SoftDelete("users", "id = $1", userColumns)
	RestoreUserByID     = softdelete.Restore("users", "id = $1", userColumns)
	ForceDeleteUserByID = softdelete.ForceDelete("users", "id = $1")
)
