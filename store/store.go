package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID marks a client-supplied document id that is not a valid hex
// ObjectID. Handlers translate it to a 400 response.
var ErrInvalidID = errors.New("invalid document id")

// FindOptions narrows a FindMany call. A zero Limit means no limit.
type FindOptions struct {
	Limit int64
	Sort  bson.D
}

// Store is the document-store contract the rest of the service consumes.
// Collections are created on first insert; documents are free-form. InsertOne
// stamps created_at when absent, UpdateOne always stamps updated_at.
type Store interface {
	FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error)
	FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions) ([]bson.M, error)
	InsertOne(ctx context.Context, collection string, doc any) (string, error)
	UpdateOne(ctx context.Context, collection string, filter bson.M, set bson.M) (matched, modified int64, err error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
	CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error)
	Collections(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}

// ObjectID validates a hex id from a URL path.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// normalize converts an arbitrary document into a bson.M and stamps
// created_at if the caller did not set one. Map inputs are copied so the
// caller's value is never mutated.
func normalize(doc any) (bson.M, error) {
	var m bson.M
	switch v := doc.(type) {
	case bson.M:
		m = make(bson.M, len(v)+1)
		for k, val := range v {
			m[k] = val
		}
	case map[string]any:
		m = make(bson.M, len(v)+1)
		for k, val := range v {
			m[k] = val
		}
	default:
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		m = bson.M{}
		if err := bson.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
	}
	if _, ok := m["created_at"]; !ok {
		m["created_at"] = time.Now().UTC()
	}
	return m, nil
}
