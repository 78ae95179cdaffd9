package controllers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// serializeDoc reshapes a stored document for a JSON response: the _id
// ObjectID becomes a plain "id" string and timestamps become RFC 3339
// strings. Nested documents and arrays are handled recursively.
func serializeDoc(doc bson.M) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if key == "_id" {
			if oid, ok := value.(primitive.ObjectID); ok {
				out["id"] = oid.Hex()
				continue
			}
		}
		out[key] = serializeValue(value)
	}
	return out
}

func serializeDocs(docs []bson.M) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, serializeDoc(doc))
	}
	return out
}

func serializeValue(value any) any {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case bson.M:
		return serializeDoc(v)
	case map[string]any:
		return serializeDoc(bson.M(v))
	case bson.A:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, serializeValue(item))
		}
		return items
	case []any:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, serializeValue(item))
		}
		return items
	default:
		return value
	}
}
