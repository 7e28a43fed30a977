package adapter

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"google.golang.org/api/option"
	"google.golang.org/api/pagespeedonline/v5"
)

// PageSpeedAuditor implements PerformanceAuditor on the PageSpeed
// Insights API.
type PageSpeedAuditor struct {
	service *pagespeedonline.Service
}

// NewPageSpeedAuditor builds an auditor backed by the PageSpeed API.
func NewPageSpeedAuditor(ctx context.Context, apiKey string) (*PageSpeedAuditor, error) {
	opts := []option.ClientOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	service, err := pagespeedonline.NewService(ctx, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: create service")
	}
	return &PageSpeedAuditor{service: service}, nil
}

// Audit runs a Lighthouse audit for the URL and form factor and returns
// the category scores and the full check map.
func (a *PageSpeedAuditor) Audit(ctx context.Context, url string, strategy Strategy) (*PageAudit, error) {
	call := a.service.Pagespeedapi.Runpagespeed(url).
		Strategy(strings.ToUpper(string(strategy))).
		Category("PERFORMANCE", "SEO", "ACCESSIBILITY", "BEST_PRACTICES")

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, eris.Wrapf(err, "pagespeed: run %s audit", strategy)
	}
	if resp.LighthouseResult == nil {
		return nil, eris.New("pagespeed: response carried no lighthouse result")
	}

	audit := &PageAudit{
		Strategy: strategy,
		Scores:   map[string]float64{},
		Checks:   map[string]AuditCheck{},
	}

	if cats := resp.LighthouseResult.Categories; cats != nil {
		setCategoryScore(audit.Scores, "performance", cats.Performance)
		setCategoryScore(audit.Scores, "seo", cats.Seo)
		setCategoryScore(audit.Scores, "accessibility", cats.Accessibility)
		setCategoryScore(audit.Scores, "best-practices", cats.BestPractices)
	}

	for id, check := range resp.LighthouseResult.Audits {
		audit.Checks[id] = AuditCheck{
			ID:               id,
			Title:            check.Title,
			Description:      check.Description,
			Score:            numericScore(check.Score),
			ScoreDisplayMode: check.ScoreDisplayMode,
		}
	}

	return audit, nil
}

func setCategoryScore(scores map[string]float64, name string, category *pagespeedonline.LighthouseCategoryV5) {
	if category == nil {
		return
	}
	if value := numericScore(category.Score); value != nil {
		scores[name] = *value
	}
}

// numericScore converts the API's loosely typed score field. Checks with
// non-numeric scores (binary "not applicable", informative output) yield
// nil.
func numericScore(raw interface{}) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

var _ PerformanceAuditor = (*PageSpeedAuditor)(nil)
