package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/pkg/errs"
)

// Postgres SQLSTATE classes the storage layer is expected to raise.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// translate converts storage errors into the shared taxonomy so raw driver
// errors never leak past the repo boundary. Unique violations become
// conflicts; check/not-null violations become validation errors, the same
// shape as application-level checks.
func translate(err error, notFoundWhat string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound(notFoundWhat)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errs.Conflict("duplicate value for " + pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return errs.Conflict("operation violates a relationship constraint: " + pgErr.ConstraintName)
		case pgCheckViolation, pgNotNullViolation:
			return errs.Validation("", "constraint violated: "+pgErr.ConstraintName)
		}
	}
	return errs.Internal(err)
}

// IsUniqueViolation reports whether err is the storage layer's duplicate-key
// backstop firing, in either raw or translated form.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return errs.KindOf(err) == errs.KindConflict
}
