package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// ErrConstraintViolation is returned when a row breaks a CHECK constraint.
var ErrConstraintViolation = errors.New("row violates a constraint")

// SortDirection orders list queries by created_at.
type SortDirection bool

const (
	NewestFirst SortDirection = false
	OldestFirst SortDirection = true
)

func (d SortDirection) sql() string {
	if d == OldestFirst {
		return "ASC"
	}
	return "DESC"
}

type scanner interface {
	Scan(dest ...any) error
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

func pqCode(err error) (code, constraint string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

// mapConstraintError turns CHECK violations into ErrConstraintViolation.
func mapConstraintError(err error) error {
	if code, constraint := pqCode(err); code == pqCheckViolation {
		return fmt.Errorf("%w: %s", ErrConstraintViolation, constraint)
	}
	return err
}
