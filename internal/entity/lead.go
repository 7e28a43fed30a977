package entity

import (
	"time"

	"github.com/google/uuid"
)

// EnrichmentStatus tracks the lifecycle of a lead's enrichment run.
type EnrichmentStatus string

const (
	EnrichmentPending   EnrichmentStatus = "pending"
	EnrichmentEnriching EnrichmentStatus = "enriching"
	EnrichmentCompleted EnrichmentStatus = "completed"
	EnrichmentFailed    EnrichmentStatus = "failed"
)

// CanTransitionEnrichment reports whether the enrichment state machine
// allows moving from one status to another. Terminal states may re-enter
// enriching so a lead can be re-enriched on demand.
func CanTransitionEnrichment(from, to EnrichmentStatus) bool {
	switch from {
	case EnrichmentPending, EnrichmentCompleted, EnrichmentFailed:
		return to == EnrichmentEnriching
	case EnrichmentEnriching:
		return to == EnrichmentCompleted || to == EnrichmentFailed
	default:
		return false
	}
}

// Lead represents a business found via search or added manually.
type Lead struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Category         *string          `json:"category,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Email            *string          `json:"email,omitempty"`
	Address          *string          `json:"address,omitempty"`
	Website          *string          `json:"website,omitempty"`
	Rating           *float64         `json:"rating,omitempty"`
	Reviews          *int             `json:"reviews,omitempty"`
	EnrichmentStatus EnrichmentStatus `json:"enrichment_status"`
	Enrichment       *Enrichment      `json:"enrichment,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// HasWebsite reports whether the lead carries a non-empty website URL.
// Enrichment and audits are impossible without one.
func (l *Lead) HasWebsite() bool {
	return l.Website != nil && *l.Website != ""
}

// Enrichment is the normalized payload produced by one enrichment run.
// Every field is independently optional: an absent field means the source
// was unavailable or produced nothing, not that the run failed. The
// payload is replaced in full on each run, never merged field by field.
type Enrichment struct {
	TechStack         []string       `json:"tech_stack,omitempty"`
	PerformanceScores map[string]int `json:"performance_scores,omitempty"`
	SocialProfile     *SocialProfile `json:"social_profile,omitempty"`
	WhatsAppHandle    *string        `json:"whatsapp_handle,omitempty"`
	AboutSummary      *string        `json:"about_summary,omitempty"`
	EnrichedAt        time.Time      `json:"enriched_at"`
}

// Empty reports whether every source contributed nothing.
func (e *Enrichment) Empty() bool {
	return len(e.TechStack) == 0 &&
		len(e.PerformanceScores) == 0 &&
		e.SocialProfile == nil &&
		e.WhatsAppHandle == nil &&
		e.AboutSummary == nil
}

// SocialProfile summarises a scraped social media presence.
type SocialProfile struct {
	Handle    string `json:"handle"`
	Followers int    `json:"followers"`
	Posts     int    `json:"posts"`
	Verified  bool   `json:"verified"`
	Bio       string `json:"bio,omitempty"`
}

// DecisionMaker is a person identified as an organizational decision-maker
// for a lead, extracted from a people-lookup roster.
type DecisionMaker struct {
	ID         uuid.UUID `json:"id"`
	LeadID     uuid.UUID `json:"lead_id"`
	Name       string    `json:"name"`
	Role       *string   `json:"role,omitempty"`
	ProfileURL *string   `json:"profile_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
