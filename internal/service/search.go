package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
)

// ErrEmptyQuery rejects a discovery request with no search terms.
var ErrEmptyQuery = errors.New("search query is required")

// SearchService discovers businesses via the search adapter and records
// them as pending leads.
type SearchService struct {
	leads    repository.LeadsRepository
	searcher adapter.BusinessSearcher
	log      *zap.Logger
}

// NewSearchService wires a search service.
func NewSearchService(leads repository.LeadsRepository, searcher adapter.BusinessSearcher, log *zap.Logger) *SearchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SearchService{leads: leads, searcher: searcher, log: log}
}

// Discover searches for businesses and upserts each hit as a lead. Hits
// without a usable website are still recorded; they just cannot be
// enriched until one is added.
func (s *SearchService) Discover(ctx context.Context, query, location string) ([]entity.Lead, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	hits, err := s.searcher.Search(ctx, query, location)
	if err != nil {
		return nil, err
	}

	leads := make([]entity.Lead, 0, len(hits))
	for _, hit := range hits {
		lead := entity.Lead{
			Name:             hit.Name,
			EnrichmentStatus: entity.EnrichmentPending,
		}
		if normalized, err := NormalizeWebsiteURL(hit.Website); err == nil {
			lead.Website = &normalized
		} else if hit.Website != "" {
			s.log.Debug("discarding unusable website from search hit",
				zap.String("name", hit.Name),
				zap.String("website", hit.Website),
			)
		}

		if err := s.leads.UpsertFromSearch(ctx, &lead); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, nil
}
