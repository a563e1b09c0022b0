package domain

import (
	"strings"
	"time"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	EntryStatusDraft EntryStatus = "draft"
	EntryStatusDone  EntryStatus = "done"
)

// Entry is one journal entry for one user on one local calendar date.
type Entry struct {
	ID             int64
	UserTelegramID string
	Date           string // "YYYY-MM-DD" in the user's timezone
	Text           string
	Form           string
	Mood           string
	Tags           []string
	FavoriteLine   *string
	Status         EntryStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LineCount returns the number of non-empty lines in the entry text.
func (e *Entry) LineCount() int {
	count := 0
	for _, line := range strings.Split(e.Text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
