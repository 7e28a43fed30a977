package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
)

// RestyScraper talks to the web scraping service. It backs both the
// content extraction and the social profile lookup adapters, which the
// provider exposes as two endpoints of the same API.
type RestyScraper struct {
	client *resty.Client
}

type extractResponse struct {
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Links []string `json:"links"`
	Error string   `json:"error,omitempty"`
}

type socialLookupResponse struct {
	Handle    string `json:"handle"`
	Followers int    `json:"followers"`
	Posts     int    `json:"posts"`
	Verified  bool   `json:"verified"`
	Bio       string `json:"bio"`
	Error     string `json:"error,omitempty"`
}

// NewRestyScraper builds a scraper client against the given base URL.
func NewRestyScraper(baseURL, apiKey string, timeout time.Duration) *RestyScraper {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &RestyScraper{client: client}
}

// Extract pulls the readable content of a page.
func (s *RestyScraper) Extract(ctx context.Context, url string) (*PageContent, error) {
	var result extractResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"url": url}).
		SetResult(&result).
		Post("/v1/extract")
	if err != nil {
		return nil, eris.Wrap(err, "scraper: extract request")
	}
	if resp.IsError() {
		return nil, eris.New(fmt.Sprintf("scraper: extract returned %d", resp.StatusCode()))
	}
	if result.Error != "" {
		return nil, eris.New("scraper: " + result.Error)
	}

	return &PageContent{
		Title: strings.TrimSpace(result.Title),
		Text:  strings.TrimSpace(result.Text),
		Links: result.Links,
	}, nil
}

// Lookup fetches a public social profile summary for the query.
func (s *RestyScraper) Lookup(ctx context.Context, query string) (*SocialProfileResult, error) {
	var result socialLookupResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&result).
		Get("/v1/social/profile")
	if err != nil {
		return nil, eris.Wrap(err, "scraper: social lookup request")
	}
	if resp.IsError() {
		return nil, eris.New(fmt.Sprintf("scraper: social lookup returned %d", resp.StatusCode()))
	}
	if result.Error != "" {
		return nil, eris.New("scraper: " + result.Error)
	}
	if strings.TrimSpace(result.Handle) == "" {
		return nil, eris.New("scraper: social lookup returned no profile")
	}

	return &SocialProfileResult{
		Handle:    strings.TrimSpace(result.Handle),
		Followers: result.Followers,
		Posts:     result.Posts,
		Verified:  result.Verified,
		Bio:       strings.TrimSpace(result.Bio),
	}, nil
}

var (
	_ ContentExtractor = (*RestyScraper)(nil)
	_ SocialScraper    = (*RestyScraper)(nil)
)
