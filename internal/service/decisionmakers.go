package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/entity"
)

// DecisionMakerVocabulary holds the role keywords that mark a person as a
// decision maker. Injected rather than global so regional deployments can
// extend it.
type DecisionMakerVocabulary struct {
	Keywords []string
}

// DefaultDecisionMakerVocabulary covers owner, founder, C-level and
// director-equivalent titles in English and Indonesian.
func DefaultDecisionMakerVocabulary() DecisionMakerVocabulary {
	return DecisionMakerVocabulary{Keywords: []string{
		"owner",
		"founder",
		"co-founder",
		"ceo",
		"chief",
		"president",
		"director",
		"managing",
		"general manager",
		"head of",
		"partner",
		"principal",
		"pemilik",
		"pendiri",
		"direktur",
		"kepala",
		"manajer",
	}}
}

// ExtractDecisionMakers filters a people roster down to decision makers.
// Matching is a case-insensitive substring check of each keyword against
// the role text; entries without a matching role are discarded. Results
// are deduplicated by (name, role) so the function is idempotent over the
// same roster.
func ExtractDecisionMakers(leadID uuid.UUID, people []adapter.Person, vocabulary DecisionMakerVocabulary) []entity.DecisionMaker {
	if len(people) == 0 || len(vocabulary.Keywords) == 0 {
		return nil
	}

	var makers []entity.DecisionMaker
	seen := make(map[string]struct{}, len(people))

	for _, person := range people {
		name := strings.TrimSpace(person.Name)
		if name == "" {
			continue
		}
		role := strings.TrimSpace(person.Role)
		if !matchesVocabulary(role, vocabulary.Keywords) {
			continue
		}

		key := strings.ToLower(name) + "|" + strings.ToLower(role)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		maker := entity.DecisionMaker{
			LeadID: leadID,
			Name:   name,
		}
		if role != "" {
			maker.Role = &role
		}
		if url := strings.TrimSpace(person.ProfileURL); url != "" {
			maker.ProfileURL = &url
		}
		makers = append(makers, maker)
	}
	return makers
}

func matchesVocabulary(role string, keywords []string) bool {
	if role == "" {
		return false
	}
	lowered := strings.ToLower(role)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
