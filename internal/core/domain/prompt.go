package domain

// Prompt is the writing prompt assigned to one calendar date. The same date
// always resolves to the same prompt.
type Prompt struct {
	Date       string `json:"date"`
	Theme      string `json:"theme"`
	Emotion    string `json:"emotion"`
	Form       string `json:"form"`
	Constraint string `json:"constraint"`
}

// Streak is the pair of consecutive-day counters shown to the user.
type Streak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}
