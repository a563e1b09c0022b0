package services

import (
	"context"

	"github.com/daily-verse/backend/internal/core/domain"
	"github.com/daily-verse/backend/internal/dto"
)

// EntrySvcFacade exposes journal entry operations to the handlers.
type EntrySvcFacade interface {
	SaveDraft(ctx context.Context, telegramID string, req dto.SaveDraftRequest) (*domain.Entry, error)
	// FinishEntry marks the entry done and returns it together with the
	// canned compliment shown to the user.
	FinishEntry(ctx context.Context, telegramID string, req dto.FinishEntryRequest) (*domain.Entry, string, error)
	ListEntries(ctx context.Context, telegramID, query string) ([]domain.Entry, error)
	GetEntry(ctx context.Context, telegramID, date string) (*domain.Entry, error)
}

// StreakSvcFacade computes consecutive-day writing streaks.
type StreakSvcFacade interface {
	Streak(ctx context.Context, telegramID string) (*domain.Streak, error)
}

// PromptSvcFacade resolves the writing prompt for a calendar date.
type PromptSvcFacade interface {
	PromptForDate(ctx context.Context, date string) (*domain.Prompt, error)
}

// SuggestSvcFacade is the mock text-suggestion service. It is pure and
// deterministic for a given input.
type SuggestSvcFacade interface {
	Continue(req dto.SuggestRequest) dto.SuggestResponse
	Rhymes(req dto.SuggestRequest) dto.SuggestResponse
	SoftEdit(req dto.SuggestRequest) dto.SuggestResponse
}
