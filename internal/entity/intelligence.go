package entity

import (
	"time"

	"github.com/google/uuid"
)

// PainPoint is a single problem surfaced during intelligence synthesis,
// backed by evidence from the aggregated lead record.
type PainPoint struct {
	Description string `json:"description"`
	Evidence    string `json:"evidence"`
	Severity    string `json:"severity"`
}

// SalesIntelligence is the synthesized outreach guidance for a lead.
// At most one current record exists per lead; a successful synthesis run
// replaces the prior record in full, a failed run leaves it untouched.
type SalesIntelligence struct {
	LeadID              uuid.UUID   `json:"lead_id"`
	Summary             string      `json:"summary"`
	PainPoints          []PainPoint `json:"pain_points"`
	RecommendedServices []string    `json:"recommended_services"`
	EmailScript         string      `json:"email_script"`
	DMScript            string      `json:"dm_script"`
	HealthScore         int         `json:"health_score"`
	Qualified           bool        `json:"qualified"`
	DisqualifiedReason  *string     `json:"disqualified_reason,omitempty"`
	GeneratedAt         time.Time   `json:"generated_at"`
}
