package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchTopHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/top-headlines" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("country") != "us" || r.URL.Query().Get("apiKey") != "k" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"title": "A", "url": "https://example.com/a", "source": {"id": "cnn", "name": "CNN"}},
				{"title": "B", "url": "https://example.com/b", "source": "Reuters"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("k", "us")
	client.BaseURL = srv.URL

	headlines, err := client.FetchTopHeadlines(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if headlines.Status != "ok" || len(headlines.Articles) != 2 {
		t.Fatalf("headlines = %+v", headlines)
	}
	// The mixed source shapes must survive decoding for later normalization.
	if normalizeSource(headlines.Articles[0].Source).Name != "CNN" {
		t.Errorf("object source lost: %s", headlines.Articles[0].Source)
	}
	if normalizeSource(headlines.Articles[1].Source).Name != "Reuters" {
		t.Errorf("string source lost: %s", headlines.Articles[1].Source)
	}
}

func TestFetchTopHeadlinesNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewNewsAPIClient("k", "us")
	client.BaseURL = srv.URL

	if _, err := client.FetchTopHeadlines(context.Background()); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestGetNewsTransformsStories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"news_list": [
			{"news_obj": {
				"author_name": "A. Writer",
				"title": "Big story",
				"image_url": "https://img.example.com/1.jpg",
				"shortened_url": "https://shrt.example.com/1",
				"content": "Body text",
				"created_at": 1700000000000,
				"source_url": "https://full.example.com/1"
			}}
		]}}`))
	}))
	defer srv.Close()

	client := NewInshortsClient()
	client.BaseURL = srv.URL

	result, err := client.GetNews(context.Background(), "technology")
	if err != nil {
		t.Fatalf("get news: %v", err)
	}
	if !result.Success || result.Category != "technology" || len(result.Data) != 1 {
		t.Fatalf("result = %+v", result)
	}
	story := result.Data[0]
	if story.Title != "Big story" || story.ReadMoreURL != "https://full.example.com/1" {
		t.Errorf("story = %+v", story)
	}
	if len(story.ID) != 32 {
		t.Errorf("story id %q is not a 32-char hex token", story.ID)
	}
	if story.Date == "" || story.Time == "" {
		t.Errorf("missing formatted timestamps: date=%q time=%q", story.Date, story.Time)
	}
}

func TestGetNewsInvalidCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "invalid category", "data": {"news_list": []}}`))
	}))
	defer srv.Close()

	client := NewInshortsClient()
	client.BaseURL = srv.URL

	result, err := client.GetNews(context.Background(), "nonsense")
	if err != nil {
		t.Fatalf("get news: %v", err)
	}
	if result.Success || result.Error != "Invalid Category" {
		t.Errorf("result = %+v", result)
	}
}
