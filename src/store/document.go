package store

import "go.mongodb.org/mongo-driver/bson"

// Document is an open-ended field mapping. Once persisted it carries the
// database-assigned "_id" field; before creation it must not.
//
// A nil Document is the not-found sentinel: single-item reads and mutations
// that match nothing return nil rather than an error. A decoded document is
// never nil, so the two cannot be confused.
type Document = bson.M
