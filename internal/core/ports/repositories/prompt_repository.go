package repositories

import (
	"context"

	"github.com/daily-verse/backend/internal/core/domain"
)

// PromptRepository persists the prompt chosen for each calendar date.
type PromptRepository interface {
	FindPromptByDate(ctx context.Context, date string) (*domain.Prompt, error)
	// SavePrompt inserts the prompt for its date; a concurrent insert for the
	// same date is not an error.
	SavePrompt(ctx context.Context, prompt domain.Prompt) error
}
