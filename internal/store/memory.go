package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "tradelight/internal/errors"
)

// MemoryStore implements DocumentStore in process memory. It backs tests and
// offline runs, and enforces the same data-shape constraint as a hosted
// store: native time.Time values are rejected, Timestamp is required.
type MemoryStore struct {
	mu   sync.RWMutex
	cols map[string]map[string]Document
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cols: make(map[string]map[string]Document)}
}

// Get returns a deep copy of the document at path, or (nil, nil) when absent.
func (m *MemoryStore) Get(ctx context.Context, path string) (Document, error) {
	col, id, err := ParseDocPath(path)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.cols[col][id]
	if !ok {
		return nil, nil
	}
	return copyDocument(doc), nil
}

// Set stores the document at path. With Merge, fields absent from the payload
// are left untouched; fields present always overwrite.
func (m *MemoryStore) Set(ctx context.Context, path string, doc Document, opts SetOptions) error {
	col, id, err := ParseDocPath(path)
	if err != nil {
		return err
	}
	if err := validateValue(doc); err != nil {
		return apperrors.NewStoreError("set", path, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cols[col] == nil {
		m.cols[col] = make(map[string]Document)
	}
	existing, ok := m.cols[col][id]
	if opts.Merge && ok {
		merged := copyDocument(existing)
		for k, v := range doc {
			merged[k] = copyValue(v)
		}
		m.cols[col][id] = merged
		return nil
	}
	m.cols[col][id] = copyDocument(doc)
	return nil
}

// ListCollection returns copies of every document under the collection path,
// ordered by document id for determinism.
func (m *MemoryStore) ListCollection(ctx context.Context, path string) ([]Document, error) {
	col, prefix, err := ParseCollectionPath(path)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id := range m.cols[col] {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyDocument(m.cols[col][id]))
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Delete removes a document. Test helper; the journal core never deletes.
func (m *MemoryStore) Delete(path string) error {
	col, id, err := ParseDocPath(path)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cols[col], id)
	return nil
}

func validateValue(v any) error {
	switch val := v.(type) {
	case time.Time, *time.Time:
		return apperrors.ErrNativeDate
	case Document:
		for _, nested := range val {
			if err := validateValue(nested); err != nil {
				return err
			}
		}
	case []any:
		for _, nested := range val {
			if err := validateValue(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case Document:
		return copyDocument(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

// MemoryCache implements LocalCache in process memory for tests and runs
// without a cache file.
type MemoryCache struct {
	mu sync.RWMutex
	kv map[string]string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{kv: make(map[string]string)}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.kv[key]
	return v, ok
}

func (c *MemoryCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kv[key] = value
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.kv, key)
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}
