package dto

// SearchNewsRequest is the inbound search payload.
type SearchNewsRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}
