package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound       = errors.New("database: record not found")
	ErrDuplicateKey   = errors.New("database: duplicate key")
	ErrForeignKey     = errors.New("database: foreign key violation")
	ErrCheckViolation = errors.New("database: check constraint violation")
)

// Error keeps the driver error next to the sentinel it was mapped to.
type Error struct {
	Sentinel   error
	Cause      error
	Constraint string
}

func (e *Error) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s (%s): %v", e.Sentinel, e.Constraint, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Sentinel, e.Cause)
}

func (e *Error) Is(target error) bool { return e.Sentinel == target }
func (e *Error) Unwrap() error        { return e.Cause }

// MapError translates pgx, lib/pq and sqlite3 errors into the sentinels above.
// Unknown errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var mapped *Error
	if errors.As(err, &mapped) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Sentinel: ErrNotFound, Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return byPGCode(pgErr.Code, pgErr.ConstraintName, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return byPGCode(string(pqErr.Code), pqErr.Constraint, err)
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &Error{Sentinel: ErrDuplicateKey, Cause: err}
		case sqlite3.ErrConstraintForeignKey:
			return &Error{Sentinel: ErrForeignKey, Cause: err}
		case sqlite3.ErrConstraintCheck:
			return &Error{Sentinel: ErrCheckViolation, Cause: err}
		}
	}
	return err
}

func byPGCode(code, constraint string, cause error) error {
	switch code {
	case pgerrcode.UniqueViolation:
		return &Error{Sentinel: ErrDuplicateKey, Cause: cause, Constraint: constraint}
	case pgerrcode.ForeignKeyViolation:
		return &Error{Sentinel: ErrForeignKey, Cause: cause, Constraint: constraint}
	case pgerrcode.CheckViolation:
		return &Error{Sentinel: ErrCheckViolation, Cause: cause, Constraint: constraint}
	}
	return cause
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
