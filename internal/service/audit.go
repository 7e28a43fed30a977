package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
)

// ScoringConfig gathers the thresholds and lookup tables the scorer uses.
// Injected so tests and regional deployments can tune them without
// touching the scorer itself.
type ScoringConfig struct {
	// GoodScore is the 0-1 score at and above which a check passes.
	GoodScore float64
	// CriticalScore is the 0-1 score below which an issue is critical.
	CriticalScore float64
	// CategoryByCheckID maps a check identifier to one of the five audit
	// categories. Unknown checks fall back to best-practices.
	CategoryByCheckID map[string]string
	// MobileCheckIDs are the mobile-usability checks averaged into the
	// mobile category score.
	MobileCheckIDs []string
}

// DefaultScoringConfig returns the standard thresholds and lookups.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		GoodScore:     0.9,
		CriticalScore: 0.5,
		CategoryByCheckID: map[string]string{
			"first-contentful-paint":    "performance",
			"largest-contentful-paint":  "performance",
			"speed-index":               "performance",
			"total-blocking-time":       "performance",
			"cumulative-layout-shift":   "performance",
			"interactive":               "performance",
			"server-response-time":      "performance",
			"render-blocking-resources": "performance",
			"unused-javascript":         "performance",
			"uses-optimized-images":     "performance",
			"uses-text-compression":     "performance",
			"document-title":            "seo",
			"meta-description":          "seo",
			"link-text":                 "seo",
			"crawlable-anchors":         "seo",
			"robots-txt":                "seo",
			"canonical":                 "seo",
			"hreflang":                  "seo",
			"http-status-code":          "seo",
			"viewport":                  "mobile",
			"font-size":                 "mobile",
			"tap-targets":               "mobile",
			"content-width":             "mobile",
			"color-contrast":            "accessibility",
			"image-alt":                 "accessibility",
			"label":                     "accessibility",
			"link-name":                 "accessibility",
			"button-name":               "accessibility",
			"html-has-lang":             "accessibility",
			"aria-allowed-attr":         "accessibility",
			"is-on-https":               "best-practices",
			"errors-in-console":         "best-practices",
			"image-aspect-ratio":        "best-practices",
			"deprecations":              "best-practices",
			"no-vulnerable-libraries":   "best-practices",
		},
		MobileCheckIDs: []string{"viewport", "font-size", "tap-targets", "content-width"},
	}
}

// skippedDisplayModes are check display modes excluded from the issue
// list: they are informational or need manual review, not failures.
var skippedDisplayModes = map[string]struct{}{
	"notApplicable": {},
	"manual":        {},
	"informative":   {},
}

// AuditService runs the website audit pipeline: both form factors,
// scoring, issue extraction, recommendations, and the persisted run
// lifecycle.
type AuditService struct {
	audits  repository.AuditsRepository
	auditor adapter.PerformanceAuditor
	cfg     ScoringConfig
	log     *zap.Logger
}

// NewAuditService wires an audit service.
func NewAuditService(audits repository.AuditsRepository, auditor adapter.PerformanceAuditor, cfg ScoringConfig, log *zap.Logger) *AuditService {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.GoodScore == 0 {
		cfg = DefaultScoringConfig()
	}
	return &AuditService{audits: audits, auditor: auditor, cfg: cfg, log: log}
}

// AuditResult is returned to the caller after a run. Failed holds the
// message when the run reached a failed terminal state.
type AuditResult struct {
	Audit   *entity.Audit
	Mobile  *adapter.PageAudit
	Desktop *adapter.PageAudit
	Failed  string
}

// Run executes one audit for the URL. Unlike enrichment, a failure of
// either form-factor call is fatal: audits are only meaningful as a
// complete, internally consistent result. The run row always reaches a
// terminal state.
func (s *AuditService) Run(ctx context.Context, url, businessName string, leadID *uuid.UUID) (result *AuditResult, err error) {
	audit := &entity.Audit{
		LeadID:       leadID,
		URL:          url,
		BusinessName: businessName,
		Status:       entity.AuditPending,
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, fmt.Errorf("create audit run: %w", err)
	}

	// The run row exists from here on and must never be left short of a
	// terminal state, whatever goes wrong below.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("audit pipeline panic: %v", r)
		}
		if err != nil {
			s.failRun(ctx, audit.ID, err.Error())
		}
	}()

	if err := s.audits.MarkRunning(ctx, audit.ID); err != nil {
		return nil, fmt.Errorf("mark audit running: %w", err)
	}

	mobile, desktop, err := s.runBothFormFactors(ctx, url)
	if err != nil {
		// Adapter failure is terminal for audits, reported as a failed
		// run rather than an error escaping the pipeline.
		s.failRun(ctx, audit.ID, err.Error())
		audit.Status = entity.AuditFailed
		message := err.Error()
		audit.ErrorMessage = &message
		return &AuditResult{Audit: audit, Failed: message}, nil
	}

	scores := categoryScores(mobile, s.cfg.MobileCheckIDs)
	overall := OverallScore(scores)
	issues := s.extractIssues(mobile)
	recommendations := s.buildRecommendations(scores)
	summary := buildSummary(overall, issues)

	audit.Scores = &scores
	audit.OverallScore = &overall
	audit.Issues = issues
	audit.Recommendations = recommendations
	audit.Summary = summary
	audit.Status = entity.AuditCompleted

	if err := s.audits.Complete(ctx, audit); err != nil {
		return nil, fmt.Errorf("persist audit result: %w", err)
	}

	return &AuditResult{Audit: audit, Mobile: mobile, Desktop: desktop}, nil
}

// runBothFormFactors issues the mobile and desktop calls concurrently.
// The first error wins; the scorer requires both results.
func (s *AuditService) runBothFormFactors(ctx context.Context, url string) (*adapter.PageAudit, *adapter.PageAudit, error) {
	var mobile, desktop *adapter.PageAudit

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.auditor.Audit(gctx, url, adapter.StrategyMobile)
		if err != nil {
			return err
		}
		mobile = result
		return nil
	})
	g.Go(func() error {
		result, err := s.auditor.Audit(gctx, url, adapter.StrategyDesktop)
		if err != nil {
			return err
		}
		desktop = result
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return mobile, desktop, nil
}

// extractIssues walks every check in the mobile result and keeps the ones
// that are scored, applicable, and below the passing threshold. The list
// is ordered critical before warning before info; ties keep the worse
// score first.
func (s *AuditService) extractIssues(audit *adapter.PageAudit) []entity.Issue {
	type scoredIssue struct {
		issue entity.Issue
		score float64
	}

	var kept []scoredIssue
	for _, check := range audit.Checks {
		if check.Score == nil {
			continue
		}
		if _, skip := skippedDisplayModes[check.ScoreDisplayMode]; skip {
			continue
		}
		score := *check.Score
		if score >= s.cfg.GoodScore {
			continue
		}

		severity := entity.SeverityWarning
		if score < s.cfg.CriticalScore {
			severity = entity.SeverityCritical
		}

		category, ok := s.cfg.CategoryByCheckID[check.ID]
		if !ok {
			category = "best-practices"
		}

		kept = append(kept, scoredIssue{
			issue: entity.Issue{
				ID:          check.ID,
				Title:       check.Title,
				Description: check.Description,
				Category:    category,
				Severity:    severity,
			},
			score: score,
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		ri, rj := entity.SeverityRank(kept[i].issue.Severity), entity.SeverityRank(kept[j].issue.Severity)
		if ri != rj {
			return ri < rj
		}
		if kept[i].score != kept[j].score {
			return kept[i].score < kept[j].score
		}
		return kept[i].issue.ID < kept[j].issue.ID
	})

	issues := make([]entity.Issue, len(kept))
	for i, item := range kept {
		issues[i] = item.issue
	}
	return issues
}

type recommendationCopy struct {
	category string
	score    int
	high     entity.Recommendation
	medium   entity.Recommendation
}

// buildRecommendations applies the fixed per-category threshold rules:
// below 50 is a high-priority recommendation, 50-79 a medium one, 80 and
// above none. Categories are independent; the list is not capped.
func (s *AuditService) buildRecommendations(scores entity.CategoryScores) []entity.Recommendation {
	table := []recommendationCopy{
		{
			category: "performance",
			score:    scores.Performance,
			high: entity.Recommendation{
				Category: "performance", Priority: "high",
				Title:       "Optimize loading speed",
				Description: "The site loads slowly enough to lose visitors. Compress images, defer unused scripts and enable caching.",
			},
			medium: entity.Recommendation{
				Category: "performance", Priority: "medium",
				Title:       "Improve loading speed",
				Description: "Loading speed is acceptable but leaves room to improve. Review image sizes and render-blocking resources.",
			},
		},
		{
			category: "seo",
			score:    scores.SEO,
			high: entity.Recommendation{
				Category: "seo", Priority: "high",
				Title:       "Fix search visibility basics",
				Description: "Search engines struggle with this site. Add titles, meta descriptions and crawlable links.",
			},
			medium: entity.Recommendation{
				Category: "seo", Priority: "medium",
				Title:       "Strengthen search optimization",
				Description: "The fundamentals are present but incomplete. Audit metadata and internal linking.",
			},
		},
		{
			category: "mobile",
			score:    scores.Mobile,
			high: entity.Recommendation{
				Category: "mobile", Priority: "high",
				Title:       "Make the site mobile friendly",
				Description: "The site is hard to use on phones. Configure the viewport and increase touch target sizes.",
			},
			medium: entity.Recommendation{
				Category: "mobile", Priority: "medium",
				Title:       "Polish the mobile experience",
				Description: "Mobile usability is passable. Check font sizes and content width on small screens.",
			},
		},
		{
			category: "accessibility",
			score:    scores.Accessibility,
			high: entity.Recommendation{
				Category: "accessibility", Priority: "high",
				Title:       "Address accessibility barriers",
				Description: "Visitors with assistive technology are locked out. Fix contrast, labels and image alt text.",
			},
			medium: entity.Recommendation{
				Category: "accessibility", Priority: "medium",
				Title:       "Improve accessibility",
				Description: "Most checks pass but some barriers remain. Review contrast ratios and form labels.",
			},
		},
		{
			category: "best-practices",
			score:    scores.BestPractices,
			high: entity.Recommendation{
				Category: "best-practices", Priority: "high",
				Title:       "Modernize the site foundation",
				Description: "The site relies on insecure or deprecated techniques. Serve over HTTPS and update vulnerable libraries.",
			},
			medium: entity.Recommendation{
				Category: "best-practices", Priority: "medium",
				Title:       "Clean up technical debt",
				Description: "A few best-practice checks fail. Resolve console errors and outdated dependencies.",
			},
		},
	}

	var recommendations []entity.Recommendation
	for _, row := range table {
		switch {
		case row.score < 50:
			recommendations = append(recommendations, row.high)
		case row.score < 80:
			recommendations = append(recommendations, row.medium)
		}
	}
	return recommendations
}

// failRun is the best-effort terminal write for a failed audit.
func (s *AuditService) failRun(ctx context.Context, id uuid.UUID, message string) {
	if err := s.audits.Fail(ctx, id, message); err != nil {
		s.log.Error("failed to mark audit failed",
			zap.String("audit_id", id.String()),
			zap.Error(err),
		)
	}
}

// CategoryScoresFromAudit converts a mobile-form-factor audit into the
// five 0-100 category scores. The mobile score averages the dedicated
// mobile-usability checks; when none were scored it falls back to the
// performance score, the closest proxy the provider offers.
func CategoryScoresFromAudit(audit *adapter.PageAudit) entity.CategoryScores {
	cfg := DefaultScoringConfig()
	return categoryScores(audit, cfg.MobileCheckIDs)
}

func categoryScores(audit *adapter.PageAudit, mobileCheckIDs []string) entity.CategoryScores {
	scores := entity.CategoryScores{
		Performance:   percentScore(audit.Scores["performance"]),
		SEO:           percentScore(audit.Scores["seo"]),
		Accessibility: percentScore(audit.Scores["accessibility"]),
		BestPractices: percentScore(audit.Scores["best-practices"]),
	}

	var sum float64
	var count int
	for _, id := range mobileCheckIDs {
		check, ok := audit.Checks[id]
		if !ok || check.Score == nil {
			continue
		}
		sum += *check.Score
		count++
	}
	if count > 0 {
		scores.Mobile = percentScore(sum / float64(count))
	} else {
		scores.Mobile = scores.Performance
	}

	return scores
}

// OverallScore is the unweighted mean of the five category scores,
// rounded to the nearest integer.
func OverallScore(scores entity.CategoryScores) int {
	sum := scores.Performance + scores.SEO + scores.Mobile + scores.Accessibility + scores.BestPractices
	return int(math.Round(float64(sum) / 5.0))
}

func percentScore(raw float64) int {
	return int(math.Round(raw * 100))
}

// buildSummary composes the human-readable run summary from the overall
// score band and the critical and warning issue counts.
func buildSummary(overall int, issues []entity.Issue) string {
	var critical, warning int
	for _, issue := range issues {
		switch issue.Severity {
		case entity.SeverityCritical:
			critical++
		case entity.SeverityWarning:
			warning++
		}
	}

	var band string
	switch {
	case overall >= 80:
		band = "The site is in good shape overall"
	case overall >= 50:
		band = "The site has a mixed health profile"
	default:
		band = "The site is in poor shape"
	}

	return fmt.Sprintf("%s with an overall score of %d/100: %d critical and %d warning issues found.",
		band, overall, critical, warning)
}
