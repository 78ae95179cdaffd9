package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInsertStampsCreatedAt(t *testing.T) {
	mem := NewMemory()
	original := bson.M{"title": "hello"}

	id, err := mem.InsertOne(context.Background(), "articles", original)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatal("insert returned empty id")
	}
	if _, ok := original["created_at"]; ok {
		t.Error("insert mutated the caller's document")
	}

	doc, err := mem.FindOne(context.Background(), "articles", bson.M{"title": "hello"})
	if err != nil || doc == nil {
		t.Fatalf("find: doc=%v err=%v", doc, err)
	}
	if _, ok := doc["created_at"]; !ok {
		t.Error("stored document missing created_at stamp")
	}
}

func TestInsertKeepsExplicitCreatedAt(t *testing.T) {
	mem := NewMemory()
	stamp := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	if _, err := mem.InsertOne(context.Background(), "articles", bson.M{"title": "x", "created_at": stamp}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	doc, _ := mem.FindOne(context.Background(), "articles", bson.M{"title": "x"})
	got, ok := doc["created_at"].(primitive.DateTime)
	if !ok {
		t.Fatalf("created_at has type %T", doc["created_at"])
	}
	if !got.Time().Equal(stamp) {
		t.Errorf("created_at = %v, want %v", got.Time(), stamp)
	}
}

func TestFindOneNoMatch(t *testing.T) {
	mem := NewMemory()
	doc, err := mem.FindOne(context.Background(), "articles", bson.M{"url": "nope"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil for no match, got %v", doc)
	}
}

func TestFindByObjectID(t *testing.T) {
	mem := NewMemory()
	id, err := mem.InsertOne(context.Background(), "articles", bson.M{"title": "by id"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	oid, err := ObjectID(id)
	if err != nil {
		t.Fatalf("parsing returned id %q: %v", id, err)
	}
	doc, err := mem.FindOne(context.Background(), "articles", bson.M{"_id": oid})
	if err != nil || doc == nil {
		t.Fatalf("find by _id: doc=%v err=%v", doc, err)
	}
	if doc["title"] != "by id" {
		t.Errorf("title = %v", doc["title"])
	}
}

func TestObjectIDValidation(t *testing.T) {
	if _, err := ObjectID("definitely-not-hex"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}

func TestRegexOrSearch(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	mem.InsertOne(ctx, "news", bson.M{"title": "Go 1.26 Released", "content": "compiler news"})
	mem.InsertOne(ctx, "news", bson.M{"title": "Weather", "content": "Sunny with GOPHERS"})
	mem.InsertOne(ctx, "news", bson.M{"title": "Politics", "content": "unrelated"})

	filter := bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": "go", "$options": "i"}},
		bson.M{"content": bson.M{"$regex": "go", "$options": "i"}},
	}}
	docs, err := mem.FindMany(ctx, "news", filter, FindOptions{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("matched %d docs, want 2", len(docs))
	}
}

func TestSortAndLimit(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "mid", "new"} {
		mem.InsertOne(ctx, "daily", bson.M{"name": name, "created_at": base.Add(time.Duration(i) * time.Hour)})
	}

	docs, err := mem.FindMany(ctx, "daily", bson.M{}, FindOptions{
		Limit: 2,
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0]["name"] != "new" || docs[1]["name"] != "mid" {
		t.Errorf("order = %v, %v; want new, mid", docs[0]["name"], docs[1]["name"])
	}
}

func TestUpdateAndDelete(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	id, _ := mem.InsertOne(ctx, "articles", bson.M{"title": "before"})
	oid, _ := ObjectID(id)

	matched, modified, err := mem.UpdateOne(ctx, "articles", bson.M{"_id": oid}, bson.M{"title": "after"})
	if err != nil || matched != 1 || modified != 1 {
		t.Fatalf("update: matched=%d modified=%d err=%v", matched, modified, err)
	}
	doc, _ := mem.FindOne(ctx, "articles", bson.M{"_id": oid})
	if doc["title"] != "after" {
		t.Errorf("title = %v after update", doc["title"])
	}
	if _, ok := doc["updated_at"]; !ok {
		t.Error("update did not stamp updated_at")
	}

	matched, _, _ = mem.UpdateOne(ctx, "articles", bson.M{"title": "missing"}, bson.M{"title": "x"})
	if matched != 0 {
		t.Errorf("update of missing doc matched %d", matched)
	}

	deleted, err := mem.DeleteOne(ctx, "articles", bson.M{"_id": oid})
	if err != nil || deleted != 1 {
		t.Fatalf("delete: deleted=%d err=%v", deleted, err)
	}
	if doc, _ := mem.FindOne(ctx, "articles", bson.M{"_id": oid}); doc != nil {
		t.Error("document still present after delete")
	}
}

func TestCollectionsAndCount(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	mem.InsertOne(ctx, "news", bson.M{"url": "a"})
	mem.InsertOne(ctx, "news", bson.M{"url": "b"})
	mem.InsertOne(ctx, "daily", bson.M{"date": "14032026"})

	names, err := mem.Collections(ctx)
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	if len(names) != 2 || names[0] != "daily" || names[1] != "news" {
		t.Errorf("collections = %v, want [daily news]", names)
	}

	n, err := mem.CountDocuments(ctx, "news", bson.M{"url": "a"})
	if err != nil || n != 1 {
		t.Errorf("count url=a: n=%d err=%v", n, err)
	}
	n, _ = mem.CountDocuments(ctx, "news", bson.M{})
	if n != 2 {
		t.Errorf("count all news: n=%d, want 2", n)
	}
}
