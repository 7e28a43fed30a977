package dto

// SearchRequest is the payload for the lead discovery endpoint.
type SearchRequest struct {
	Query    string `json:"query"`
	Location string `json:"location,omitempty"`
}
