package dto

import "github.com/daily-verse/backend/internal/core/domain"

// SaveDraftRequest stores work-in-progress text for a date.
type SaveDraftRequest struct {
	Date string   `json:"date" binding:"required,datetime=2006-01-02"`
	Text string   `json:"text" binding:"required"`
	Form string   `json:"form" binding:"required"`
	Mood string   `json:"mood"`
	Tags []string `json:"tags"`
}

// FinishEntryRequest marks the entry for a date as done.
type FinishEntryRequest struct {
	Date         string   `json:"date" binding:"required,datetime=2006-01-02"`
	Text         string   `json:"text" binding:"required"`
	Form         string   `json:"form" binding:"required"`
	Mood         string   `json:"mood"`
	Tags         []string `json:"tags"`
	FavoriteLine *string  `json:"favoriteLine"`
}

// SaveEntryResponse acknowledges a draft or finish write.
type SaveEntryResponse struct {
	OK         bool   `json:"ok"`
	ID         int64  `json:"id"`
	Compliment string `json:"compliment,omitempty"`
}

// EntryListItem is one row of the library view.
type EntryListItem struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	Text         string  `json:"text"`
	FavoriteLine *string `json:"favoriteLine"`
}

// EntryResponse is the full single-entry view.
type EntryResponse struct {
	Date         string   `json:"date"`
	Text         string   `json:"text"`
	Form         string   `json:"form"`
	Mood         string   `json:"mood"`
	Tags         []string `json:"tags"`
	FavoriteLine *string  `json:"favoriteLine"`
	Status       string   `json:"status"`
}

// TodayEntry is the entry block of the /today payload.
type TodayEntry struct {
	Status       string  `json:"status"`
	Text         string  `json:"text"`
	Form         string  `json:"form"`
	Mood         string  `json:"mood"`
	FavoriteLine *string `json:"favoriteLine"`
	Lines        int     `json:"lines"`
}

// TodayResponse is the landing payload of the webapp.
type TodayResponse struct {
	Date           string         `json:"date"`
	Prompt         *domain.Prompt `json:"prompt"`
	Entry          *TodayEntry    `json:"entry"`
	DailyGoalLines int            `json:"dailyGoalLines"`
	TimerEnabled   bool           `json:"timerEnabled"`
}

// ToEntryListItems converts domain entries into library rows.
func ToEntryListItems(entries []domain.Entry) []EntryListItem {
	items := make([]EntryListItem, len(entries))
	for i, e := range entries {
		items[i] = EntryListItem{
			ID:           e.ID,
			Date:         e.Date,
			Status:       string(e.Status),
			Text:         e.Text,
			FavoriteLine: e.FavoriteLine,
		}
	}
	return items
}

// ToEntryResponse converts a domain entry into its full view.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryResponse{
		Date:         e.Date,
		Text:         e.Text,
		Form:         e.Form,
		Mood:         e.Mood,
		Tags:         tags,
		FavoriteLine: e.FavoriteLine,
		Status:       string(e.Status),
	}
}

// ToTodayEntry converts a domain entry into the /today entry block.
func ToTodayEntry(e *domain.Entry) *TodayEntry {
	if e == nil {
		return nil
	}
	return &TodayEntry{
		Status:       string(e.Status),
		Text:         e.Text,
		Form:         e.Form,
		Mood:         e.Mood,
		FavoriteLine: e.FavoriteLine,
		Lines:        e.LineCount(),
	}
}
