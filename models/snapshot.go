package models

// DailySnapshot is the single cached record for one calendar day of
// headlines. Its presence in the daily collection is the "already fetched
// today" marker; it is never mutated after insert.
type DailySnapshot struct {
	Date              string    `json:"date" bson:"date"`
	Data              []Article `json:"data" bson:"data"`
	TotalArticles     int       `json:"total_articles" bson:"total_articles"`
	APIResponseStatus string    `json:"api_response_status" bson:"api_response_status"`
	CachedAt          string    `json:"cached_at" bson:"cached_at"`
}

// FetchResult is what the daily orchestrator hands back to callers. Status is
// "ok" or "error"; Source reports whether the articles came from the daily
// cache or a fresh upstream fetch.
type FetchResult struct {
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles,omitempty"`
	Source       string    `json:"source,omitempty"`
	CachedDate   string    `json:"cached_date,omitempty"`
}
