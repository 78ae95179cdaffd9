package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"newsvoice/models"
	"newsvoice/store"
)

const (
	dailyCollection = "daily"
	newsCollection  = "news"

	// Calendar-day cache key, DDMMYYYY in UTC.
	dayKeyFormat = "02012006"
)

// Orchestrator serves top headlines from a once-per-day cache. The first call
// of a day fetches from the upstream news API, persists the articles
// (de-duplicated by url) and a daily snapshot, and every later call that day
// is answered from the snapshot.
//
// The lookup-then-insert sequence is not locked: concurrent first calls of a
// day can each fetch upstream and each write a snapshot. Reads take the first
// snapshot found, so the race costs a duplicate fetch, not a wrong answer.
type Orchestrator struct {
	store   store.Store
	fetcher HeadlineFetcher
	now     func() time.Time
}

func NewOrchestrator(s store.Store, f HeadlineFetcher) *Orchestrator {
	return &Orchestrator{store: s, fetcher: f, now: time.Now}
}

// FetchOrCacheDaily returns today's headlines, fetching them at most once per
// calendar day. Failures never panic and never raise: the result's Status
// field reports them.
func (o *Orchestrator) FetchOrCacheDaily(ctx context.Context) models.FetchResult {
	day := o.now().UTC().Format(dayKeyFormat)

	doc, err := o.store.FindOne(ctx, dailyCollection, bson.M{"date": day})
	if err != nil {
		log.Printf("daily cache lookup for %s failed: %v", day, err)
		return models.FetchResult{Status: "error", Message: err.Error()}
	}
	if doc != nil {
		snapshot, err := decodeSnapshot(doc)
		if err != nil {
			// Unreadable cache entry; fall through to a fresh fetch.
			log.Printf("daily cache entry for %s is unreadable: %v", day, err)
		} else {
			return models.FetchResult{
				Status:       "ok",
				TotalResults: len(snapshot.Data),
				Articles:     snapshot.Data,
				Source:       "cache",
				CachedDate:   day,
			}
		}
	}

	log.Printf("no cached news for %s, calling API", day)
	headlines, err := o.fetcher.FetchTopHeadlines(ctx)
	if err != nil {
		log.Printf("fetching top headlines: %v", err)
		return models.FetchResult{Status: "error", Message: "Failed to fetch news from API"}
	}
	if headlines.Status != "ok" {
		return models.FetchResult{Status: "error", Message: fmt.Sprintf("news API returned status %q", headlines.Status)}
	}

	cachedAt := o.now().UTC().Format(time.RFC3339)
	articles := make([]models.Article, 0, len(headlines.Articles))
	for _, raw := range headlines.Articles {
		articles = append(articles, transform(raw, cachedAt))
	}

	// Article-level persistence failures degrade the cycle but never abort
	// it; the snapshot below is written regardless.
	for _, article := range articles {
		if err := o.saveArticle(ctx, article); err != nil {
			log.Printf("saving article %q: %v", article.Title, err)
		}
	}

	snapshot := models.DailySnapshot{
		Date:              day,
		Data:              articles,
		TotalArticles:     len(articles),
		APIResponseStatus: headlines.Status,
		CachedAt:          cachedAt,
	}
	if _, err := o.store.InsertOne(ctx, dailyCollection, snapshot); err != nil {
		log.Printf("saving daily cache for %s: %v", day, err)
	} else {
		log.Printf("saved daily cache for %s with %d articles", day, len(articles))
	}

	return models.FetchResult{
		Status:       "ok",
		TotalResults: len(articles),
		Articles:     articles,
		Source:       "api",
		CachedDate:   day,
	}
}

// saveArticle inserts an article into the news collection unless one with the
// same url is already stored.
func (o *Orchestrator) saveArticle(ctx context.Context, article models.Article) error {
	existing, err := o.store.FindOne(ctx, newsCollection, bson.M{"url": article.URL})
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = o.store.InsertOne(ctx, newsCollection, article)
	return err
}

func transform(raw RawArticle, cachedAt string) models.Article {
	return models.Article{
		ID:          newID(),
		Title:       raw.Title,
		Description: raw.Description,
		URL:         raw.URL,
		URLToImage:  raw.URLToImage,
		PublishedAt: raw.PublishedAt,
		Content:     raw.Content,
		Author:      raw.Author,
		Source:      normalizeSource(raw.Source),
		CachedAt:    cachedAt,
	}
}

// normalizeSource accepts the upstream source field as an object, a bare
// string, or nothing at all.
func normalizeSource(raw json.RawMessage) models.Source {
	if len(raw) == 0 || string(raw) == "null" {
		return models.Source{}
	}
	var obj models.Source
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return models.Source{Name: name}
	}
	return models.Source{}
}

func decodeSnapshot(doc bson.M) (*models.DailySnapshot, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var snapshot models.DailySnapshot
	if err := bson.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
