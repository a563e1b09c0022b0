package repositories

import (
	"context"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
)

// UserRepository defines persistence operations for users and their settings.
type UserRepository interface {
	// SaveUser inserts the user if the telegram id is unseen and leaves an
	// existing row untouched. It returns the stored row.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)
	FindUserByID(ctx context.Context, telegramID string) (*domain.User, error)
	// FindUsersWithRemindersEnabled returns every user the scheduler must
	// consider on a tick.
	FindUsersWithRemindersEnabled(ctx context.Context) ([]domain.User, error)
	UpdateSettings(ctx context.Context, user domain.User) error
	SetRemindersEnabled(ctx context.Context, telegramID string, enabled bool) error
	SetSoftSkipUsedAt(ctx context.Context, telegramID string, usedAt time.Time) error
	SetLastRemindedAt(ctx context.Context, telegramID string, remindedAt time.Time) error
}
