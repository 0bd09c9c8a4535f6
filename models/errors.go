package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by the repositories. Callers match on these
// with errors.Is and surface the message to the user.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrConstraintViolation is returned when the store rejects a write
	// (foreign key restrict, NOT NULL, length).
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrStoreUnavailable is returned when the store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrValidation is returned for inputs rejected before any store call.
	ErrValidation = errors.New("validation failed")
)

// translateStoreError maps driver-level failures onto the sentinel
// taxonomy. GORM exposes its own not-found sentinel; constraint and
// connectivity failures only come back as driver messages, so those are
// matched on the message text for both supported providers.
func translateStoreError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	msg := err.Error()
	switch {
	// MySQL 1451/1452 and SQLite phrase the same violation differently.
	case strings.Contains(msg, "foreign key constraint fails"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case strings.Contains(msg, "cannot be null"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case strings.Contains(msg, "Data too long"),
		strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "bad connection"),
		strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "database is closed"):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
