package shared

import (
	"errors"
	"fmt"
)

var (
	// Store errors that stop the process
	ErrCannotOpen       = fmt.Errorf("cannot open database")
	ErrSchemaUnreadable = fmt.Errorf("schema version unreadable")
	ErrMigrationFailed  = fmt.Errorf("schema migration failed")
	ErrQueryFailed      = fmt.Errorf("query failed")

	// Store errors reported back to the user
	ErrNotFound           = fmt.Errorf("not found")
	ErrReferencedByModels = fmt.Errorf("referenced by models")
	ErrDuplicateName      = fmt.Errorf("name already exists")
	ErrInvalidField       = fmt.Errorf("invalid search field")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// ReferencedError reports a delete blocked because models still point at the row.
type ReferencedError struct {
	Kind  string
	ID    int64
	Count int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d model(s)", e.Kind, e.ID, e.Count)
}

func (e *ReferencedError) Unwrap() error { return ErrReferencedByModels }

// IsFatal reports whether err belongs to a class the host cannot recover from.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range []error{ErrCannotOpen, ErrSchemaUnreadable, ErrMigrationFailed, ErrQueryFailed} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
