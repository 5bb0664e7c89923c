// Package mongostore implements the remote document store on MongoDB.
//
// Document paths map onto a flattened layout: the collection segments of a
// path become one Mongo collection ("users/u1/tradeLogs/d" lives in
// "users_tradeLogs") and the id segments form the compound _id ("u1/d").
package mongostore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "tradelight/internal/errors"
	"tradelight/internal/store"
	"tradelight/pkg/utils"
)

// Config holds connection settings for the remote store.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Store implements store.DocumentStore on a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger zerolog.Logger
}

// Connect dials the remote store and verifies connectivity with a retried
// ping.
func Connect(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperrors.Wrap(err, "connecting to remote store")
	}
	if err := utils.Retry(ctx, utils.DefaultRetryConfig(), func() error {
		return client.Ping(ctx, nil)
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	logger.Debug().Str("database", cfg.Database).Msg("Remote store connected")
	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

// Get returns the document at path, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, path string) (store.Document, error) {
	col, id, err := store.ParseDocPath(path)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	err = s.db.Collection(col).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get", path, err)
	}
	return docFromBSON(raw), nil
}

// Set writes the document at path with upsert semantics. With Merge, fields
// present in the payload overwrite and absent fields are left untouched
// server-side; without Merge the payload replaces the document.
func (s *Store) Set(ctx context.Context, path string, doc store.Document, opts store.SetOptions) error {
	col, id, err := store.ParseDocPath(path)
	if err != nil {
		return err
	}
	fields, err := fieldsToBSON(doc)
	if err != nil {
		return apperrors.NewStoreError("set", path, err)
	}
	upsert := options.Update().SetUpsert(true)
	if opts.Merge {
		_, err = s.db.Collection(col).UpdateOne(ctx,
			bson.M{"_id": id}, bson.M{"$set": fields}, upsert)
	} else {
		_, err = s.db.Collection(col).ReplaceOne(ctx,
			bson.M{"_id": id}, fields, options.Replace().SetUpsert(true))
	}
	if err != nil {
		return apperrors.NewStoreError("set", path, err)
	}
	return nil
}

// ListCollection returns every document under a collection path.
func (s *Store) ListCollection(ctx context.Context, path string) ([]store.Document, error) {
	col, prefix, err := store.ParseCollectionPath(path)
	if err != nil {
		return nil, err
	}
	filter := bson.M{}
	if prefix != "" {
		filter["_id"] = bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}
	}
	cursor, err := s.db.Collection(col).Find(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreError("list", path, err)
	}
	defer cursor.Close(ctx)

	var out []store.Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, apperrors.NewStoreError("list", path, err)
		}
		out = append(out, docFromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewStoreError("list", path, err)
	}
	return out, nil
}

// Close disconnects from the remote store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// fieldsToBSON converts a Document payload for the wire, translating
// store.Timestamp into the driver's native datetime. Native time.Time values
// are rejected: callers must convert at the codec boundary.
func fieldsToBSON(doc store.Document) (bson.M, error) {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		conv, err := valueToBSON(v)
		if err != nil {
			return nil, err
		}
		out[k] = conv
	}
	return out, nil
}

func valueToBSON(v any) (any, error) {
	switch val := v.(type) {
	case time.Time, *time.Time:
		return nil, apperrors.ErrNativeDate
	case store.Timestamp:
		return primitive.DateTime(val), nil
	case store.Document:
		return fieldsToBSON(val)
	case []any:
		arr := make(bson.A, len(val))
		for i, item := range val {
			conv, err := valueToBSON(item)
			if err != nil {
				return nil, err
			}
			arr[i] = conv
		}
		return arr, nil
	default:
		return v, nil
	}
}

// docFromBSON converts a decoded document back to the Document shape,
// translating datetimes into store.Timestamp and dropping the _id key.
func docFromBSON(raw bson.M) store.Document {
	out := make(store.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		out[k] = valueFromBSON(v)
	}
	return out
}

func valueFromBSON(v any) any {
	switch val := v.(type) {
	case primitive.DateTime:
		return store.Timestamp(val)
	case bson.M:
		out := make(store.Document, len(val))
		for k, nested := range val {
			out[k] = valueFromBSON(nested)
		}
		return out
	case bson.D:
		// The driver decodes nested documents into bson.D by default.
		out := make(store.Document, len(val))
		for _, elem := range val {
			out[elem.Key] = valueFromBSON(elem.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(val))
		for i, nested := range val {
			out[i] = valueFromBSON(nested)
		}
		return out
	case int32:
		return int64(val)
	default:
		return v
	}
}
