package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means the statement matched no row.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrForeignKey means a referenced row does not exist.
	ErrForeignKey = errors.New("repository: foreign key violation")
)

// Constraint names declared by CreateSchema. Conflicts are attributed to a
// field by these names, never by inspecting driver message text.
const (
	ConstraintAccountUsername = "accounts_username_key"
	ConstraintAccountEmail    = "accounts_email_key"
	ConstraintHolidayTitle    = "holidays_title_key"
	ConstraintAttendancePair  = "user_holidays_pair_key"
	ConstraintAttendanceUser  = "user_holidays_user_id_fkey"
	ConstraintAttendanceEvent = "user_holidays_holiday_id_fkey"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// ConstraintError reports which named constraint rejected a write.
// Constraint may be empty when the driver did not report one.
type ConstraintError struct {
	Kind       error
	Constraint string
	Table      string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("%v on %s", e.Kind, e.Table)
	}
	return fmt.Sprintf("%v on %s (%s)", e.Kind, e.Table, e.Constraint)
}

func (e *ConstraintError) Is(target error) bool {
	return target == e.Kind
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// classify maps driver errors onto the repository sentinels. Unrecognised
// errors are wrapped with the operation name and passed through.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return &ConstraintError{Kind: ErrDuplicate, Constraint: pqErr.Constraint, Table: pqErr.Table, Err: err}
		case pqForeignKeyViolation:
			return &ConstraintError{Kind: ErrForeignKey, Constraint: pqErr.Constraint, Table: pqErr.Table, Err: err}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ConstraintName extracts the violated constraint name, if any.
func ConstraintName(err error) string {
	var cErr *ConstraintError
	if errors.As(err, &cErr) {
		return cErr.Constraint
	}
	return ""
}
