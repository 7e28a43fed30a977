package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditStatus tracks the lifecycle of one audit run.
type AuditStatus string

const (
	AuditPending   AuditStatus = "pending"
	AuditRunning   AuditStatus = "running"
	AuditCompleted AuditStatus = "completed"
	AuditFailed    AuditStatus = "failed"
)

// IssueSeverity orders audit issues. The persisted issue list is sorted
// critical < warning < info.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityWarning  IssueSeverity = "warning"
	SeverityInfo     IssueSeverity = "info"
)

// SeverityRank maps a severity to its position in the fixed total order.
// Unknown severities sort last.
func SeverityRank(s IssueSeverity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// CategoryScores holds the five audit category scores, each 0-100.
// They are persisted together or not at all: a run missing any of them
// is recorded as failed.
type CategoryScores struct {
	Performance   int `json:"performance"`
	SEO           int `json:"seo"`
	Mobile        int `json:"mobile"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"best_practices"`
}

// Issue is a single failing check found during an audit.
type Issue struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category"`
	Severity    IssueSeverity `json:"severity"`
}

// Recommendation suggests an improvement derived from category scores.
type Recommendation struct {
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Audit is one scored run of the website quality pipeline. Runs accumulate
// as history; a new audit never overwrites a previous one. Once completed
// or failed the row is immutable.
type Audit struct {
	ID              uuid.UUID        `json:"id"`
	LeadID          *uuid.UUID       `json:"lead_id,omitempty"`
	URL             string           `json:"url"`
	BusinessName    string           `json:"business_name,omitempty"`
	Status          AuditStatus      `json:"status"`
	Scores          *CategoryScores  `json:"scores,omitempty"`
	OverallScore    *int             `json:"overall_score,omitempty"`
	Issues          []Issue          `json:"issues,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	ErrorMessage    *string          `json:"error_message,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
}
