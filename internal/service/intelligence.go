package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
)

// ErrUnparsableSynthesis indicates the narrator returned text that could
// not be interpreted as a structured result. Nothing is persisted.
var ErrUnparsableSynthesis = errors.New("could not interpret synthesis result")

const synthesisSystemPrompt = `You are a sales analyst for a web agency. You receive a profile of a ` +
	`local business and respond with outreach guidance. Respond with a single JSON object and nothing ` +
	`else, matching exactly this shape:
{
  "summary": string,
  "pain_points": [{"description": string, "evidence": string, "severity": "low"|"medium"|"high"}],
  "recommended_services": [string],
  "email_script": string,
  "dm_script": string,
  "health_score": integer 0-100,
  "qualified": boolean,
  "disqualified_reason": string or null
}`

// IntelligenceService synthesizes sales intelligence for a lead from its
// aggregated record via the narrator adapter.
type IntelligenceService struct {
	leads    repository.LeadsRepository
	audits   repository.AuditsRepository
	intel    repository.IntelligenceRepository
	narrator adapter.Narrator
	log      *zap.Logger
}

// NewIntelligenceService wires an intelligence service.
func NewIntelligenceService(
	leads repository.LeadsRepository,
	audits repository.AuditsRepository,
	intel repository.IntelligenceRepository,
	narrator adapter.Narrator,
	log *zap.Logger,
) *IntelligenceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &IntelligenceService{leads: leads, audits: audits, intel: intel, narrator: narrator, log: log}
}

// synthesisPayload is the structured shape demanded from the narrator.
type synthesisPayload struct {
	Summary             string             `json:"summary"`
	PainPoints          []entity.PainPoint `json:"pain_points"`
	RecommendedServices []string           `json:"recommended_services"`
	EmailScript         string             `json:"email_script"`
	DMScript            string             `json:"dm_script"`
	HealthScore         int                `json:"health_score"`
	Qualified           bool               `json:"qualified"`
	DisqualifiedReason  *string            `json:"disqualified_reason"`
}

// Synthesize runs the intelligence pipeline for one lead. A run either
// fully replaces the stored result or leaves it untouched: narrator
// failures and interpretation failures persist nothing.
func (s *IntelligenceService) Synthesize(ctx context.Context, leadID uuid.UUID) (*entity.SalesIntelligence, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	makers, err := s.leads.ListDecisionMakers(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("load decision makers: %w", err)
	}

	var latestAudit *entity.Audit
	if audit, err := s.audits.LatestCompletedForLead(ctx, leadID); err == nil {
		latestAudit = audit
	} else if !errors.Is(err, repository.ErrAuditNotFound) {
		return nil, fmt.Errorf("load latest audit: %w", err)
	}

	prompt := ComposeContext(lead, makers, latestAudit)

	raw, err := s.narrator.Generate(ctx, synthesisSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("narrator call: %w", err)
	}

	payload, err := parseSynthesis(raw)
	if err != nil {
		s.log.Warn("unparsable synthesis output",
			zap.String("lead_id", leadID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	intel := &entity.SalesIntelligence{
		LeadID:              lead.ID,
		Summary:             payload.Summary,
		PainPoints:          payload.PainPoints,
		RecommendedServices: payload.RecommendedServices,
		EmailScript:         payload.EmailScript,
		DMScript:            payload.DMScript,
		HealthScore:         clampScore(payload.HealthScore),
		Qualified:           payload.Qualified,
		DisqualifiedReason:  payload.DisqualifiedReason,
		GeneratedAt:         time.Now().UTC(),
	}

	if err := s.intel.Upsert(ctx, intel); err != nil {
		return nil, fmt.Errorf("persist intelligence: %w", err)
	}
	return intel, nil
}

const notAvailable = "not available"

// ComposeContext renders the lead record into the fixed-section context
// block submitted to the narrator. Sections with no source data state so
// explicitly rather than disappearing, so the model always sees the full,
// explained picture.
func ComposeContext(lead *entity.Lead, makers []entity.DecisionMaker, audit *entity.Audit) string {
	var b strings.Builder

	b.WriteString("## Business profile\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Category: %s\n", stringOrFallback(lead.Category))
	fmt.Fprintf(&b, "Website: %s\n", stringOrFallback(lead.Website))
	fmt.Fprintf(&b, "Address: %s\n", stringOrFallback(lead.Address))
	if lead.Rating != nil && lead.Reviews != nil {
		fmt.Fprintf(&b, "Rating: %.1f from %d reviews\n", *lead.Rating, *lead.Reviews)
	} else {
		fmt.Fprintf(&b, "Rating: %s\n", notAvailable)
	}

	b.WriteString("\n## Detected technology\n")
	if lead.Enrichment != nil && len(lead.Enrichment.TechStack) > 0 {
		b.WriteString(strings.Join(lead.Enrichment.TechStack, ", "))
		b.WriteString("\n")
	} else {
		b.WriteString(notAvailable + "\n")
	}

	b.WriteString("\n## Website performance\n")
	switch {
	case audit != nil && audit.Scores != nil:
		fmt.Fprintf(&b, "Performance %d, SEO %d, Mobile %d, Accessibility %d, Best practices %d (overall %s)\n",
			audit.Scores.Performance, audit.Scores.SEO, audit.Scores.Mobile,
			audit.Scores.Accessibility, audit.Scores.BestPractices, overallOrFallback(audit))
	case lead.Enrichment != nil && len(lead.Enrichment.PerformanceScores) > 0:
		b.WriteString(formatScoreMap(lead.Enrichment.PerformanceScores))
	default:
		b.WriteString(notAvailable + "\n")
	}

	b.WriteString("\n## Social presence\n")
	if lead.Enrichment != nil && lead.Enrichment.SocialProfile != nil {
		p := lead.Enrichment.SocialProfile
		verified := "not verified"
		if p.Verified {
			verified = "verified"
		}
		fmt.Fprintf(&b, "@%s, %d followers, %d posts, %s\n", p.Handle, p.Followers, p.Posts, verified)
		if p.Bio != "" {
			fmt.Fprintf(&b, "Bio: %s\n", p.Bio)
		}
	} else {
		b.WriteString(notAvailable + "\n")
	}

	b.WriteString("\n## About the business\n")
	if lead.Enrichment != nil && lead.Enrichment.AboutSummary != nil {
		b.WriteString(*lead.Enrichment.AboutSummary + "\n")
	} else {
		b.WriteString(notAvailable + "\n")
	}

	b.WriteString("\n## Decision makers\n")
	if len(makers) > 0 {
		for _, m := range makers {
			role := notAvailable
			if m.Role != nil {
				role = *m.Role
			}
			if m.ProfileURL != nil {
				fmt.Fprintf(&b, "- %s (%s), profile: %s\n", m.Name, role, *m.ProfileURL)
			} else {
				fmt.Fprintf(&b, "- %s (%s)\n", m.Name, role)
			}
		}
	} else {
		b.WriteString(notAvailable + "\n")
	}

	b.WriteString("\n## Direct contact channel\n")
	if lead.Enrichment != nil && lead.Enrichment.WhatsAppHandle != nil {
		fmt.Fprintf(&b, "WhatsApp: %s\n", *lead.Enrichment.WhatsAppHandle)
	} else {
		b.WriteString(notAvailable + "\n")
	}

	return b.String()
}

// parseSynthesis strips fence markers and any surrounding prose before
// the structural parse. A result that still fails to parse, or that
// parses to an object with no summary, is an interpretation error.
func parseSynthesis(raw string) (*synthesisPayload, error) {
	cleaned := StripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, ErrUnparsableSynthesis
	}
	cleaned = cleaned[start : end+1]

	var payload synthesisPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, ErrUnparsableSynthesis
	}
	if strings.TrimSpace(payload.Summary) == "" {
		return nil, ErrUnparsableSynthesis
	}
	return &payload, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func stringOrFallback(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return notAvailable
	}
	return *value
}

func overallOrFallback(audit *entity.Audit) string {
	if audit.OverallScore == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d", *audit.OverallScore)
}

func formatScoreMap(scores map[string]int) string {
	keys := []string{"performance", "seo", "mobile", "accessibility", "best_practices"}
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if value, ok := scores[key]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", key, value))
		}
	}
	if len(parts) == 0 {
		return notAvailable + "\n"
	}
	return strings.Join(parts, ", ") + "\n"
}
