package dto

import "github.com/leadscout/api/internal/entity"

// EnrichResponse is returned by the enrichment trigger endpoint.
type EnrichResponse struct {
	LeadID           string                  `json:"lead_id"`
	EnrichmentStatus entity.EnrichmentStatus `json:"enrichment_status"`
	Payload          *entity.Enrichment      `json:"payload,omitempty"`
	DecisionMakers   []entity.DecisionMaker  `json:"decision_makers,omitempty"`
}
