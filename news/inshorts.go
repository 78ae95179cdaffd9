package news

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TrendingStory is one scraped story shaped for API consumers. Date and Time
// are human-readable strings in IST, matching the upstream site's locale.
type TrendingStory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ReadMoreURL string `json:"readMoreUrl"`
}

// TrendingResult is the payload of the /news endpoint.
type TrendingResult struct {
	Success  bool            `json:"success"`
	Category string          `json:"category"`
	Data     []TrendingStory `json:"data"`
	Error    string          `json:"error,omitempty"`
}

type inshortsEnvelope struct {
	Error string `json:"error"`
	Data  struct {
		NewsList []struct {
			NewsObj struct {
				AuthorName   string `json:"author_name"`
				Title        string `json:"title"`
				ImageURL     string `json:"image_url"`
				ShortenedURL string `json:"shortened_url"`
				Content      string `json:"content"`
				CreatedAt    int64  `json:"created_at"`
				SourceURL    string `json:"source_url"`
			} `json:"news_obj"`
		} `json:"news_list"`
	} `json:"data"`
}

var ist = time.FixedZone("IST", 5*3600+1800)

// The scraper endpoint rejects non-browser clients, so requests carry a
// desktop browser header set.
var inshortsHeaders = map[string]string{
	"authority":    "inshorts.com",
	"accept":       "*/*",
	"content-type": "application/json",
	"referer":      "https://inshorts.com/en/read",
	"user-agent":   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
}

// InshortsClient scrapes trending stories from the inshorts API.
type InshortsClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewInshortsClient() *InshortsClient {
	return &InshortsClient{
		BaseURL: "https://inshorts.com",
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetNews fetches stories for one category. The special category "all" maps
// to the general feed; anything else goes through trending-topics search.
func (c *InshortsClient) GetNews(ctx context.Context, category string) (*TrendingResult, error) {
	var endpoint string
	if category == "all" {
		endpoint = c.BaseURL + "/api/en/news?category=all_news&max_limit=10&include_card_data=true"
	} else {
		endpoint = fmt.Sprintf("%s/api/en/search/trending_topics/%s?category=top_stories&max_limit=20&include_card_data=true", c.BaseURL, category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range inshortsHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope inshortsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding inshorts response: %w", err)
	}

	result := &TrendingResult{Success: true, Category: category, Data: []TrendingStory{}}
	if len(envelope.Data.NewsList) == 0 {
		result.Success = false
		result.Error = "Invalid Category"
		return result, nil
	}

	for _, entry := range envelope.Data.NewsList {
		news := entry.NewsObj
		published := time.UnixMilli(news.CreatedAt).In(ist)
		result.Data = append(result.Data, TrendingStory{
			ID:          newID(),
			Title:       news.Title,
			ImageURL:    news.ImageURL,
			URL:         news.ShortenedURL,
			Content:     news.Content,
			Author:      news.AuthorName,
			Date:        published.Format("Monday, 02 January, 2006"),
			Time:        strings.ToLower(published.Format("03:04 PM")),
			ReadMoreURL: news.SourceURL,
		})
	}
	return result, nil
}

// newID returns a 32-char hex token, the id format stored with every article.
func newID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
