package store

import "context"

// Hook is a caller-supplied callback run after a single-document mutation
// commits. It receives the fully-formed document, identifier included, and
// is awaited before the mutation returns to the caller.
type Hook func(ctx context.Context, doc Document) error

// Hooks holds the optional post-mutation callbacks for a collection, one per
// mutation kind. Bulk operations (CreateMany, UpdateMany, DeleteMany) never
// invoke hooks.
type Hooks struct {
	AfterCreate Hook
	AfterUpdate Hook
	AfterDelete Hook
}
