package repositories

import (
	"context"

	"github.com/daily-verse/backend/internal/core/domain"
)

// EntryRepository defines persistence operations for journal entries.
type EntryRepository interface {
	// UpsertEntry creates or replaces the entry for (user, date) and returns
	// the stored row.
	UpsertEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error)
	FindEntry(ctx context.Context, telegramID, date string) (*domain.Entry, error)
	// FindEntries lists the user's entries newest-first, optionally filtered
	// by a case-insensitive substring of the text.
	FindEntries(ctx context.Context, telegramID, query string) ([]domain.Entry, error)
	// HasDoneEntry reports whether a finished entry exists for (user, date).
	// The scheduler uses it to suppress redundant reminders.
	HasDoneEntry(ctx context.Context, telegramID, date string) (bool, error)
	// FindDoneDates returns the distinct dates of finished entries, ascending.
	FindDoneDates(ctx context.Context, telegramID string) ([]string, error)
}
