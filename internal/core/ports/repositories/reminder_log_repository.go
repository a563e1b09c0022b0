package repositories

import (
	"context"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
)

// ReminderLogRepository is the durable ledger of reminder attempts. One row
// per (user, local date); rows are created once, resolved once and never
// deleted.
type ReminderLogRepository interface {
	// GetOrCreate atomically inserts a pending log for the key carried by the
	// argument, or returns the existing one. The boolean reports whether a
	// new row was created. Concurrent callers never create two rows.
	GetOrCreate(ctx context.Context, log domain.ReminderLog) (*domain.ReminderLog, bool, error)
	// Resolve transitions the log out of pending. It returns
	// apperrors.ErrConflict without any change when the log already left
	// pending, and apperrors.ErrNotFound when the key is unknown.
	Resolve(ctx context.Context, reminderID string, status domain.ReminderStatus, sentAt time.Time, errorCode, errorMessage *string) (*domain.ReminderLog, error)
	FindByID(ctx context.Context, reminderID string) (*domain.ReminderLog, error)
}
