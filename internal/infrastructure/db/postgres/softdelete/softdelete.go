// Package softdelete is the single place where delete-shaped SQL is
// rewritten into tombstone updates and where read filters get the
// active-only default. Every soft-delete-enabled repository builds its
// queries through these helpers, so the rewrite cannot be bypassed by
// reaching the pool through a different entity package.
package softdelete

import (
	"fmt"
	"strings"
)

// Column is the tombstone marker. NULL means active.
const Column = "deleted_at"

// Scope injects the active-only filter unless the caller's WHERE
// already constrains the marker column. Callers that mention the
// column explicitly (any predicate, including IS NOT NULL) opt out of
// the injection.
func Scope(where string) string {
	if strings.Contains(where, Column) {
		return where
	}
	if where == "" {
		return Column + " IS NULL"
	}
	return where + " AND " + Column + " IS NULL"
}

// Any passes the WHERE through untouched: the explicit
// include-tombstoned escape hatch.
func Any(where string) string { return where }

// SoftDelete rewrites a single-row delete into a tombstone update.
// Only active rows match, so deleting a tombstoned row affects nothing.
func SoftDelete(table, where, returning string) string {
	q := fmt.Sprintf("UPDATE %s SET %s = now() WHERE %s", table, Column, Scope(where))
	if returning != "" {
		q += " RETURNING " + returning
	}
	return q
}

// SoftDeleteAll is the bulk form of SoftDelete.
func SoftDeleteAll(table, where string) string {
	return SoftDelete(table, where, "")
}

// Restore clears the marker via a targeted update. It must reach
// tombstoned rows, so no active-only filter is injected.
func Restore(table, where, returning string) string {
	q := fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s", table, Column, Any(where))
	if returning != "" {
		q += " RETURNING " + returning
	}
	return q
}

// ForceDelete is the genuine, permanent row removal. It bypasses the
// rewrite entirely and reaches both active and tombstoned rows.
func ForceDelete(table, where string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", table, Any(where))
}
