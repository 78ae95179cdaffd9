package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RawArticle is one headline as the upstream news API returns it. Source is
// kept raw because some feeds send it as an object and others as a bare
// string; normalization happens during the transform step.
type RawArticle struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	URLToImage  string          `json:"urlToImage"`
	PublishedAt string          `json:"publishedAt"`
	Content     string          `json:"content"`
	Author      string          `json:"author"`
	Source      json.RawMessage `json:"source"`
}

// Headlines is the top-headlines response envelope.
type Headlines struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`
}

// HeadlineFetcher is the upstream news collaborator the orchestrator depends on.
type HeadlineFetcher interface {
	FetchTopHeadlines(ctx context.Context) (*Headlines, error)
}

// NewsAPIClient fetches top headlines from newsapi.org.
type NewsAPIClient struct {
	BaseURL string
	APIKey  string
	Country string
	HTTP    *http.Client
}

func NewNewsAPIClient(apiKey, country string) *NewsAPIClient {
	return &NewsAPIClient{
		BaseURL: "https://newsapi.org",
		APIKey:  apiKey,
		Country: country,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NewsAPIClient) FetchTopHeadlines(ctx context.Context) (*Headlines, error) {
	q := url.Values{}
	q.Set("country", c.Country)
	q.Set("apiKey", c.APIKey)
	endpoint := c.BaseURL + "/v2/top-headlines?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned status %d", resp.StatusCode)
	}

	var headlines Headlines
	if err := json.NewDecoder(resp.Body).Decode(&headlines); err != nil {
		return nil, fmt.Errorf("decoding news API response: %w", err)
	}
	return &headlines, nil
}
