package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
)

// ErrNoWebsite is the precondition failure returned when enrichment is
// requested for a lead without a website URL. No adapter is called.
var ErrNoWebsite = errors.New("cannot enrich without a website")

// EnrichmentSources groups the adapters the aggregator fans out to.
// Any of them may be nil, in which case that source simply contributes
// nothing.
type EnrichmentSources struct {
	Tech    adapter.TechDetector
	People  adapter.PeopleFinder
	Perf    adapter.PerformanceAuditor
	Social  adapter.SocialScraper
	Content adapter.ContentExtractor
}

// EnrichmentService runs the enrichment pipeline: it owns the lead's
// enrichment status transitions, fans out to the source adapters, and
// persists the merged payload.
type EnrichmentService struct {
	leads         repository.LeadsRepository
	sources       EnrichmentSources
	vocabulary    DecisionMakerVocabulary
	defaultRegion string
	log           *zap.Logger
}

// NewEnrichmentService wires an enrichment service.
func NewEnrichmentService(leads repository.LeadsRepository, sources EnrichmentSources, vocabulary DecisionMakerVocabulary, defaultRegion string, log *zap.Logger) *EnrichmentService {
	if log == nil {
		log = zap.NewNop()
	}
	if len(vocabulary.Keywords) == 0 {
		vocabulary = DefaultDecisionMakerVocabulary()
	}
	return &EnrichmentService{
		leads:         leads,
		sources:       sources,
		vocabulary:    vocabulary,
		defaultRegion: defaultRegion,
		log:           log,
	}
}

// EnrichmentResult is returned to the caller after a completed run.
type EnrichmentResult struct {
	Lead           *entity.Lead            `json:"lead"`
	Payload        *entity.Enrichment      `json:"payload"`
	DecisionMakers []entity.DecisionMaker  `json:"decision_makers"`
	Status         entity.EnrichmentStatus `json:"enrichment_status"`
}

// sourceResults collects each adapter's contribution. Every slot is
// written by exactly one goroutine during the fan-out.
type sourceResults struct {
	techStack []string
	people    []adapter.Person
	perf      *adapter.PageAudit
	social    *adapter.SocialProfileResult
	content   *adapter.PageContent
}

// Enrich runs the full pipeline for one lead. Individual source failures
// are absorbed: the run completes with whatever the remaining sources
// produced, even if that is nothing. Only pipeline-level faults (missing
// lead, persistence errors, a panic inside the run) fail the run, and
// those still leave the lead in a terminal failed status.
func (s *EnrichmentService) Enrich(ctx context.Context, leadID uuid.UUID) (result *EnrichmentResult, err error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.HasWebsite() {
		return nil, ErrNoWebsite
	}

	if err := s.leads.SetEnrichmentStatus(ctx, lead.ID, lead.EnrichmentStatus, entity.EnrichmentEnriching); err != nil {
		return nil, fmt.Errorf("enter enriching state: %w", err)
	}

	// The lead must never be left in enriching: any fault below this
	// point, including a panic, resolves to a terminal failed write.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enrichment pipeline panic: %v", r)
		}
		if err != nil {
			s.markFailed(ctx, lead.ID)
			result = nil
		}
	}()

	results := s.aggregate(ctx, lead)

	makers := ExtractDecisionMakers(lead.ID, results.people, s.vocabulary)
	if err := s.leads.ReplaceDecisionMakers(ctx, lead.ID, makers); err != nil {
		return nil, fmt.Errorf("persist decision makers: %w", err)
	}

	payload := s.buildPayload(lead, results)
	if err := s.leads.SaveEnrichment(ctx, lead.ID, payload); err != nil {
		return nil, fmt.Errorf("persist enrichment: %w", err)
	}

	lead.Enrichment = payload
	lead.EnrichmentStatus = entity.EnrichmentCompleted

	return &EnrichmentResult{
		Lead:           lead,
		Payload:        payload,
		DecisionMakers: makers,
		Status:         entity.EnrichmentCompleted,
	}, nil
}

// aggregate fans out to every configured source concurrently and waits
// for all of them to settle. There is no short-circuit: a failing source
// logs and leaves its slot empty while the others keep running.
func (s *EnrichmentService) aggregate(ctx context.Context, lead *entity.Lead) *sourceResults {
	website := *lead.Website
	results := &sourceResults{}

	g, gctx := errgroup.WithContext(ctx)

	if s.sources.Tech != nil {
		g.Go(func() error {
			stack, err := s.sources.Tech.Detect(gctx, website)
			if err != nil {
				s.logSourceFailure(lead.ID, "tech_detect", err)
				return nil
			}
			results.techStack = stack
			return nil
		})
	}

	if s.sources.People != nil {
		g.Go(func() error {
			people, err := s.sources.People.FindPeople(gctx, lead.Name)
			if err != nil {
				s.logSourceFailure(lead.ID, "people_lookup", err)
				return nil
			}
			results.people = people
			return nil
		})
	}

	if s.sources.Perf != nil {
		g.Go(func() error {
			audit, err := s.sources.Perf.Audit(gctx, website, adapter.StrategyMobile)
			if err != nil {
				s.logSourceFailure(lead.ID, "performance_audit", err)
				return nil
			}
			results.perf = audit
			return nil
		})
	}

	if s.sources.Social != nil {
		g.Go(func() error {
			profile, err := s.sources.Social.Lookup(gctx, lead.Name)
			if err != nil {
				s.logSourceFailure(lead.ID, "social_lookup", err)
				return nil
			}
			results.social = profile
			return nil
		})
	}

	if s.sources.Content != nil {
		g.Go(func() error {
			content, err := s.sources.Content.Extract(gctx, website)
			if err != nil {
				s.logSourceFailure(lead.ID, "content_extract", err)
				return nil
			}
			results.content = content
			return nil
		})
	}

	// Goroutines only ever return nil; Wait is a pure barrier here.
	_ = g.Wait()
	return results
}

// buildPayload merges whatever the sources produced into a fresh payload.
func (s *EnrichmentService) buildPayload(lead *entity.Lead, results *sourceResults) *entity.Enrichment {
	payload := &entity.Enrichment{
		TechStack:  results.techStack,
		EnrichedAt: time.Now().UTC(),
	}

	if results.perf != nil {
		scores := CategoryScoresFromAudit(results.perf)
		payload.PerformanceScores = map[string]int{
			"performance":    scores.Performance,
			"seo":            scores.SEO,
			"mobile":         scores.Mobile,
			"accessibility":  scores.Accessibility,
			"best_practices": scores.BestPractices,
		}
	}

	if results.social != nil {
		payload.SocialProfile = &entity.SocialProfile{
			Handle:    results.social.Handle,
			Followers: results.social.Followers,
			Posts:     results.social.Posts,
			Verified:  results.social.Verified,
			Bio:       results.social.Bio,
		}
	}

	if results.content != nil && results.content.Text != "" {
		summary := Summarize(results.content.Text, 480)
		payload.AboutSummary = &summary
	}

	if lead.Phone != nil {
		handle, err := adapter.WhatsAppHandle(*lead.Phone, s.defaultRegion)
		if err != nil {
			s.logSourceFailure(lead.ID, "contact_discovery", err)
		} else {
			payload.WhatsAppHandle = &handle
		}
	}

	return payload
}

// markFailed is the best-effort terminal write when the pipeline itself
// fails. Its own error is only logged: the original failure is what the
// caller needs to see.
func (s *EnrichmentService) markFailed(ctx context.Context, leadID uuid.UUID) {
	if err := s.leads.SetEnrichmentStatus(ctx, leadID, entity.EnrichmentEnriching, entity.EnrichmentFailed); err != nil {
		s.log.Error("failed to mark lead enrichment failed",
			zap.String("lead_id", leadID.String()),
			zap.Error(err),
		)
	}
}

func (s *EnrichmentService) logSourceFailure(leadID uuid.UUID, source string, err error) {
	s.log.Warn("enrichment source unavailable",
		zap.String("lead_id", leadID.String()),
		zap.String("source", source),
		zap.Error(err),
	)
}
