package store

import (
	"context"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store used by tests. It interprets the filter
// subset the service actually issues: top-level equality, $or, and
// $regex with the "i" option.
type Memory struct {
	mu    sync.RWMutex
	colls map[string][]bson.M
}

func NewMemory() *Memory {
	return &Memory{colls: make(map[string][]bson.M)}
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			return clone(doc), nil
		}
	}
	return nil, nil
}

func (m *Memory) FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []bson.M{}
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			out = append(out, clone(doc))
		}
	}
	if len(opts.Sort) > 0 {
		field := opts.Sort[0].Key
		desc := toInt(opts.Sort[0].Value) < 0
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][field], out[j][field])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *Memory) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	normalized, err := normalize(doc)
	if err != nil {
		return "", err
	}
	oid := primitive.NewObjectID()
	if existing, ok := normalized["_id"].(primitive.ObjectID); ok {
		oid = existing
	} else {
		normalized["_id"] = oid
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colls[collection] = append(m.colls[collection], clone(normalized))
	return oid.Hex(), nil
}

func (m *Memory) UpdateOne(ctx context.Context, collection string, filter bson.M, set bson.M) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			for k, v := range set {
				doc[k] = v
			}
			doc["updated_at"] = time.Now().UTC()
			return 1, 1, nil
		}
	}
	return 0, 0, nil
}

func (m *Memory) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.colls[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			m.colls[collection] = append(docs[:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *Memory) CountDocuments(ctx context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, doc := range m.colls[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) Collections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.colls))
	for name := range m.colls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) Close(ctx context.Context) error { return nil }

// clone deep-copies a document through a bson round trip, which also mirrors
// the driver's type mapping (time.Time becomes primitive.DateTime).
func clone(doc bson.M) bson.M {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return doc
	}
	out := bson.M{}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return doc
	}
	return out
}

func matches(doc bson.M, filter bson.M) bool {
	for key, want := range filter {
		if key == "$or" {
			if !matchesAny(doc, want) {
				return false
			}
			continue
		}
		if cond, ok := asMap(want); ok {
			if pattern, ok := cond["$regex"].(string); ok {
				if !regexMatch(toString(doc[key]), pattern, toString(cond["$options"])) {
					return false
				}
				continue
			}
		}
		if !reflect.DeepEqual(doc[key], want) {
			return false
		}
	}
	return true
}

func matchesAny(doc bson.M, alternatives any) bool {
	rv := reflect.ValueOf(alternatives)
	if rv.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if sub, ok := asMap(rv.Index(i).Interface()); ok && matches(doc, bson.M(sub)) {
			return true
		}
	}
	return false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

func regexMatch(value, pattern, opts string) bool {
	if strings.Contains(opts, "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

func compare(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case int32:
		return int(av - toInt32(b))
	case int64:
		bv := toInt(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return 0
}

func toInt32(v any) int32 {
	n, _ := v.(int32)
	return n
}
