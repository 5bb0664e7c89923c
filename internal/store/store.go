// Package store defines the persistence collaborators of the journal: a
// remote document store holding one document per (user, day), and a
// synchronous local cache shadowing the day being edited.
package store

import (
	"context"
	"time"
)

// Timestamp is the store-native timestamp representation: milliseconds since
// the Unix epoch. Document values must carry dates as Timestamp; adapters
// reject native time.Time values at the boundary.
type Timestamp int64

// NewTimestamp converts a time.Time to the store-native representation.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time converts the timestamp back to an equivalent calendar time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts)).UTC()
}

// Document is a JSON-like record: scalars, []any sequences, nested
// map[string]any mappings, and Timestamp values.
type Document = map[string]any

// SetOptions controls how Set applies its payload.
type SetOptions struct {
	// Merge leaves fields absent from the payload untouched server-side;
	// fields present always overwrite.
	Merge bool
}

// DocumentStore is the remote document database collaborator. Documents are
// addressed by paths of alternating collection and id segments, e.g.
// "users/<uid>/tradeLogs/<dayKey>".
type DocumentStore interface {
	// Get returns the document at path, or (nil, nil) when absent.
	Get(ctx context.Context, path string) (Document, error)
	// Set writes the document at path with upsert semantics.
	Set(ctx context.Context, path string, doc Document, opts SetOptions) error
	// ListCollection returns every document under a collection path.
	ListCollection(ctx context.Context, path string) ([]Document, error)
	Close(ctx context.Context) error
}

// LocalCache is the synchronous key-value collaborator shadowing remote
// state, keyed by day key. Values are JSON-serialized records.
type LocalCache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
