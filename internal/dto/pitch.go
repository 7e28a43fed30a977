package dto

// PitchStatusRequest advances a pitch through the outreach state machine.
type PitchStatusRequest struct {
	Status string `json:"status"`
}
