package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type FSContext string

const (
	DBContextURL FSContext = "fs-backend-url"
)

// SQLite returns the dialector for a SQLite database at path.
// Foreign keys are always enforced.
func SQLite(path string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", path))
}

// Postgres returns the dialector for a PostgreSQL database.
func Postgres(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// Connect opens the database, migrates the schema and registers the
// callbacks that translate database errors into the errors of this package.
func Connect(dialector gorm.Dialector) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	// Query callbacks
	err := db.Callback().Query().After("*").Register("finansmart:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("finansmart:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Row callbacks, used for aggregates
	err = db.Callback().Row().After("*").Register("finansmart:after_row_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("finansmart:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("finansmart:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("finansmart:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("finansmart:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("finansmart:after_delete", deleteCallback)
	if err != nil {
		return err
	}

	return db.Callback().Delete().After("*").Register("finansmart:after_delete_general", generalCallback)
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, resourceName(db.Statement.Table))
	}
}

// resourceName derives a human readable resource name from a table name.
func resourceName(table string) string {
	name := strings.ReplaceAll(table, "_", " ")

	if strings.HasSuffix(name, "ies") {
		return strings.TrimSuffix(name, "ies") + "y"
	}

	return strings.TrimSuffix(name, "s")
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	// Category names must be unique per user
	if strings.Contains(msg, "UNIQUE constraint failed: categories.user_id, categories.name") ||
		strings.Contains(msg, "idx_category_user_name") {
		db.Error = ErrCategoryNameNotUnique
		return
	}

	// Any other unique constraint, e.g. the email of a user
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		db.Error = ErrUniqueViolation
		return
	}

	// A referenced resource does not exist
	if strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "violates foreign key constraint") {
		db.Error = ErrInvalidReference
	}
}

// deleteCallback reports deletes that are blocked by references from other
// resources, e.g. a category that is still used by expenses.
func deleteCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()
	if strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "violates foreign key constraint") {
		db.Error = ErrResourceInUse
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
// Errors already translated by the other callbacks are kept.
func generalCallback(db *gorm.DB) {
	if db.Error == nil || translated(db.Error) {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || IsInternal(db.Error) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// translated reports whether err is one of the errors of this package
// that are reported to users as they are.
func translated(err error) bool {
	for _, e := range []error{ErrResourceNotFound, ErrCategoryNameNotUnique, ErrInvalidReference, ErrResourceInUse, ErrUniqueViolation} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(User{}, Category{}, Budget{}, Income{}, Expense{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
