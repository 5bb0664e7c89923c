package journal

import (
	"encoding/json"
	"sort"
	"strings"

	apperrors "tradelight/internal/errors"
	"tradelight/internal/store"
)

const modelsCacheKey = "trade-models"

// ModelList manages the user's saved trade model names. The list lives in
// the local cache only; it never syncs to the remote store.
type ModelList struct {
	cache store.LocalCache
}

// NewModelList creates a model list over cache.
func NewModelList(cache store.LocalCache) *ModelList {
	return &ModelList{cache: cache}
}

// List returns the saved model names in stored order. A missing or corrupt
// entry reads as an empty list.
func (m *ModelList) List() []string {
	raw, ok := m.cache.Get(modelsCacheKey)
	if !ok {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil
	}
	return names
}

// Add appends a model name. Names are unique ignoring case; a duplicate
// returns ErrModelExists.
func (m *ModelList) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("model", name, "name must not be empty")
	}
	names := m.List()
	for _, existing := range names {
		if strings.EqualFold(existing, name) {
			return apperrors.ErrModelExists
		}
	}
	return m.persist(append(names, name))
}

// Remove deletes a model name, matched ignoring case.
func (m *ModelList) Remove(name string) error {
	names := m.List()
	for i, existing := range names {
		if strings.EqualFold(existing, name) {
			return m.persist(append(names[:i], names[i+1:]...))
		}
	}
	return apperrors.ErrModelNotFound
}

// Filter returns the saved names containing query, ignoring case. An empty
// query returns the whole list, sorted.
func (m *ModelList) Filter(query string) []string {
	names := m.List()
	if query == "" {
		sort.Strings(names)
		return names
	}
	query = strings.ToLower(query)
	var out []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), query) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (m *ModelList) persist(names []string) error {
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return m.cache.Set(modelsCacheKey, string(raw))
}
