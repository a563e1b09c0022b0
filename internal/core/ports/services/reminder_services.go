package services

import (
	"context"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
)

// ReminderSvcFacade is the reminder core: due-list computation (scheduler
// side) and ledger resolution (dispatcher side).
type ReminderSvcFacade interface {
	// CollectDue computes the users due for a reminder at the given instant,
	// creates their pending ledger rows and returns the due-list. Per-user
	// configuration errors are logged and skipped, never returned.
	CollectDue(ctx context.Context, now time.Time) ([]domain.DueReminder, error)
	// Report records the terminal delivery outcome for a ledger row. It
	// returns apperrors.ErrConflict when the row was already resolved and
	// apperrors.ErrNotFound for an unknown key.
	Report(ctx context.Context, reminderKey string, status domain.ReminderStatus, errorCode, errorMessage *string) error
}
