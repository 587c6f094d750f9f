package stores

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/colonyops/journey/internal/core/todo"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsConstraintError returns true if the error is a constraint violation,
// such as a CHECK on the enum columns.
func IsConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// Extended codes carry the primary code in the low byte.
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// classifyWriteError marks constraint violations as validation failures so
// a row the schema rejects is not reported as a storage fault.
func classifyWriteError(err error) error {
	if IsConstraintError(err) {
		return fmt.Errorf("%w: %w", todo.ErrValidation, err)
	}
	return err
}

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
