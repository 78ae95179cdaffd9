package models

// Source identifies the publisher of an article. Upstream sometimes sends it
// as a bare string instead of an object; the fetch pipeline normalizes both
// shapes into this struct.
type Source struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Article is one cached headline. Immutable once persisted; url is the
// natural key used for de-duplication in the news collection.
type Article struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	URL         string `json:"url" bson:"url"`
	URLToImage  string `json:"urlToImage" bson:"urlToImage"`
	PublishedAt string `json:"publishedAt" bson:"publishedAt"`
	Content     string `json:"content" bson:"content"`
	Author      string `json:"author" bson:"author"`
	Source      Source `json:"source" bson:"source"`
	CachedAt    string `json:"cached_at" bson:"cached_at"`
}
