package store

import (
	"strings"

	apperrors "tradelight/internal/errors"
)

// Document paths alternate collection and id segments. Adapters flatten the
// hierarchy: collection segments join into a single collection name and id
// segments join into a compound document id, so "users/u1/tradeLogs/d1"
// becomes document "u1/d1" in collection "users_tradeLogs".

// ParseDocPath splits a document path (even number of segments) into a
// flattened collection name and compound document id.
func ParseDocPath(path string) (collection, id string, err error) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 || len(segs)%2 != 0 {
		return "", "", apperrors.NewStoreError("parse", path, apperrors.ErrInvalidPath)
	}
	var cols, ids []string
	for i, s := range segs {
		if s == "" {
			return "", "", apperrors.NewStoreError("parse", path, apperrors.ErrInvalidPath)
		}
		if i%2 == 0 {
			cols = append(cols, s)
		} else {
			ids = append(ids, s)
		}
	}
	return strings.Join(cols, "_"), strings.Join(ids, "/"), nil
}

// ParseCollectionPath splits a collection path (odd number of segments) into
// a flattened collection name and the id prefix its documents share.
// For a top-level collection the prefix is empty.
func ParseCollectionPath(path string) (collection, idPrefix string, err error) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 || len(segs)%2 != 1 {
		return "", "", apperrors.NewStoreError("parse", path, apperrors.ErrInvalidPath)
	}
	var cols, ids []string
	for i, s := range segs {
		if s == "" {
			return "", "", apperrors.NewStoreError("parse", path, apperrors.ErrInvalidPath)
		}
		if i%2 == 0 {
			cols = append(cols, s)
		} else {
			ids = append(ids, s)
		}
	}
	prefix := ""
	if len(ids) > 0 {
		prefix = strings.Join(ids, "/") + "/"
	}
	return strings.Join(cols, "_"), prefix, nil
}
