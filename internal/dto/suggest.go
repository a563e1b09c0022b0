package dto

// SuggestRequest asks the mock text-suggestion service for help with a draft.
type SuggestRequest struct {
	Text string `json:"text" binding:"required"`
	Seed string `json:"seed"`
}

// SuggestDiff is the before/after pair returned by soft-edit.
type SuggestDiff struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// SuggestResponse carries suggestion lines and, for soft-edit, a diff.
type SuggestResponse struct {
	Items []string     `json:"items"`
	Diff  *SuggestDiff `json:"diff,omitempty"`
}
