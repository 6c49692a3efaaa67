package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "inventory-system/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError turns driver errors into the application sentinels so services can
// rely on errors.Is. Unique and foreign key violations are the authoritative
// conflict signal.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return &ConstraintError{Op: op, Constraint: pgErr.ConstraintName, Code: pgErr.Code, cause: err}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ConstraintError reports a violated unique or foreign key constraint.
type ConstraintError struct {
	Op         string
	Constraint string
	Code       string
	cause      error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: constraint %s violated: %v", e.Op, e.Constraint, e.cause)
}

func (e *ConstraintError) Is(target error) bool {
	return target == apperrors.ErrConflict
}

func (e *ConstraintError) Unwrap() error { return e.cause }

// ViolatedConstraint returns the constraint name if err is a ConstraintError.
func ViolatedConstraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}
