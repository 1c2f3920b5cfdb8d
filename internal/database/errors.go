package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrNotFound is returned by repositories when no row matches the given
// primary key.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned by repositories when the store rejects a write over
// a uniqueness or referential rule.
var ErrConflict = errors.New("constraint violation")

// MySQL error numbers for constraint violations.
const (
	mysqlErrDuplicateEntry uint16 = 1062
	mysqlErrFKConstraint   uint16 = 1452
)

// IsConstraintViolation reports whether err was raised by the store rejecting
// a write over a uniqueness or referential rule. Uniqueness is enforced in the
// schema, not application logic, so every repository classifies the driver
// error after the fact.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrDuplicateEntry || myErr.Number == mysqlErrFKConstraint
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23 covers integrity constraint violations.
		return strings.HasPrefix(pgErr.Field('C'), "23")
	}

	// sqlite reports constraint failures as plain strings through database/sql.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
