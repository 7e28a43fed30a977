package dto

import "github.com/leadscout/api/internal/entity"

// AuditRequest is the payload for the audit trigger endpoint.
type AuditRequest struct {
	URL          string `json:"url"`
	BusinessName string `json:"business_name"`
	LeadID       string `json:"lead_id,omitempty"`
}

// FormFactorScores carries the raw category scores of one form factor for
// reference alongside the derived result.
type FormFactorScores struct {
	Performance   int `json:"performance"`
	SEO           int `json:"seo"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"best_practices"`
}

// AuditData groups the per-form-factor reference scores.
type AuditData struct {
	Mobile  *FormFactorScores `json:"mobile,omitempty"`
	Desktop *FormFactorScores `json:"desktop,omitempty"`
}

// AuditResponse is the success body of the audit endpoint. Issues are
// capped at 20 for transport; the persisted run keeps the full list.
// When the pipeline ran but failed, Error is set instead and the HTTP
// status stays 200 so callers can tell a pipeline failure from a
// transport one.
type AuditResponse struct {
	AuditID         string                  `json:"audit_id,omitempty"`
	Scores          *entity.CategoryScores  `json:"scores,omitempty"`
	OverallScore    *int                    `json:"overall_score,omitempty"`
	Issues          []entity.Issue          `json:"issues,omitempty"`
	Recommendations []entity.Recommendation `json:"recommendations,omitempty"`
	Summary         string                  `json:"summary,omitempty"`
	AuditData       *AuditData              `json:"audit_data,omitempty"`
	Error           string                  `json:"error,omitempty"`
}
