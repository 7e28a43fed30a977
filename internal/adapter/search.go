package adapter

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// CustomSearchBusinessSearcher finds local businesses through the Google
// Programmable Search API.
type CustomSearchBusinessSearcher struct {
	service  *customsearch.Service
	engineID string
}

// NewCustomSearchBusinessSearcher builds a searcher for the given engine.
func NewCustomSearchBusinessSearcher(ctx context.Context, apiKey, engineID string) (*CustomSearchBusinessSearcher, error) {
	if engineID == "" {
		return nil, eris.New("search: engine id is required")
	}
	service, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "search: create service")
	}
	return &CustomSearchBusinessSearcher{service: service, engineID: engineID}, nil
}

// Search queries for businesses matching the query near the location.
func (s *CustomSearchBusinessSearcher) Search(ctx context.Context, query, location string) ([]BusinessHit, error) {
	terms := strings.TrimSpace(query)
	if location = strings.TrimSpace(location); location != "" {
		terms = terms + " " + location
	}

	resp, err := s.service.Cse.List().Cx(s.engineID).Q(terms).Context(ctx).Do()
	if err != nil {
		return nil, eris.Wrap(err, "search: list request")
	}

	hits := make([]BusinessHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		hits = append(hits, BusinessHit{
			Name:    strings.TrimSpace(item.Title),
			Website: strings.TrimSpace(item.Link),
			Snippet: strings.TrimSpace(item.Snippet),
		})
	}
	return hits, nil
}

var _ BusinessSearcher = (*CustomSearchBusinessSearcher)(nil)
