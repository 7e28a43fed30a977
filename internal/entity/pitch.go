package entity

import (
	"time"

	"github.com/google/uuid"
)

// PitchStatus tracks the outreach lifecycle of a generated pitch page.
// Advancement is driven by view tracking and user action, but writes must
// still respect the machine.
type PitchStatus string

const (
	PitchDraft    PitchStatus = "draft"
	PitchSent     PitchStatus = "sent"
	PitchOpened   PitchStatus = "opened"
	PitchFeedback PitchStatus = "feedback"
)

// CanTransitionPitch reports whether a pitch may move between the given
// statuses. draft → sent → opened, with feedback as an optional terminal
// branch after sent or opened.
func CanTransitionPitch(from, to PitchStatus) bool {
	switch from {
	case PitchDraft:
		return to == PitchSent
	case PitchSent:
		return to == PitchOpened || to == PitchFeedback
	case PitchOpened:
		return to == PitchFeedback
	default:
		return false
	}
}

// Pitch is an outreach artifact generated for a lead.
type Pitch struct {
	ID        uuid.UUID   `json:"id"`
	LeadID    uuid.UUID   `json:"lead_id"`
	Status    PitchStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
