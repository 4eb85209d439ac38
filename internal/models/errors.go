package models

import (
	"context"
	"database/sql/driver"
	"errors"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Constraint errors
var (
	ErrCategoryNameNotUnique = errors.New("a category with this name already exists for this user")
	ErrInvalidReference      = errors.New("there is no resource for the ID you specified in the reference to another resource")
	ErrResourceInUse         = errors.New("the resource is still referenced by other resources and cannot be deleted")
	ErrUniqueViolation       = errors.New("a resource with these values already exists")
)

// IsInternal reports whether err is a failure of the server, e.g. of the
// database driver or the request context, and not of the request data.
func IsInternal(err error) bool {
	if errors.Is(err, ErrGeneral) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return true
	}

	var pgConnectErr *pgconn.ConnectError
	if errors.As(err, &pgConnectErr) {
		return true
	}

	var sqliteErr *go_sqlite.Error
	return errors.As(err, &sqliteErr)
}
