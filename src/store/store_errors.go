package store

// Add custom error definitions here
import (
	"errors"
	"fmt"
)

// ErrNoDocumentCreated is returned when a single-document insert reports
// success but yields no inserted identifier.
var ErrNoDocumentCreated = errors.New("insert reported no created document")

// ErrEmptyCollectionName is returned when a collection is requested without a name.
var ErrEmptyCollectionName = errors.New("collection name must not be empty")

// ErrNoDefaultDatabase is returned when the connection string carries no
// default database and none is configured in settings.
var ErrNoDefaultDatabase = errors.New("connection string does not specify a default database")

// HookError reports a post-mutation hook failure. The underlying write has
// already committed by the time the hook runs, so the caller observes the
// mutation as failed even though the document changed.
type HookError struct {
	Op  string
	Err error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("after-%s hook failed: %v", e.Op, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
