package repository

import (
	"database/sql"
	"fmt"
)

// requireRows converts a zero-row write into sql.ErrNoRows so services can
// surface not-found for unknown or foreign ids.
func requireRows(res sql.Result, action string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
