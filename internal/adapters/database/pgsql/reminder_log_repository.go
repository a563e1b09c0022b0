package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReminderLogRepository struct {
	db *pgxpool.Pool
}

func NewReminderLogRepository(db *pgxpool.Pool) portsrepo.ReminderLogRepository {
	return &PgxReminderLogRepository{db: db}
}

// Ensure PgxReminderLogRepository implements portsrepo.ReminderLogRepository
var _ portsrepo.ReminderLogRepository = (*PgxReminderLogRepository)(nil)

const reminderLogColumns = `reminder_id, user_telegram_id, date, scheduled_at, sent_at, status,
	error_code, error_message, created_at, updated_at`

func scanReminderLog(row pgx.Row) (*domain.ReminderLog, error) {
	var l domain.ReminderLog
	err := row.Scan(
		&l.ReminderID,
		&l.UserTelegramID,
		&l.Date,
		&l.ScheduledAt,
		&l.SentAt,
		&l.Status,
		&l.ErrorCode,
		&l.ErrorMessage,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetOrCreate relies on the unique constraint over (user_telegram_id, date):
// the insert is a no-op when a row already exists, so two concurrent
// scheduler runs can never double-create a ledger row for the same key.
func (r *PgxReminderLogRepository) GetOrCreate(ctx context.Context, log domain.ReminderLog) (*domain.ReminderLog, bool, error) {
	insert := `
        INSERT INTO reminder_logs (reminder_id, user_telegram_id, date, scheduled_at, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, 'pending', $5, $5)
        ON CONFLICT (user_telegram_id, date) DO NOTHING;
    `
	cmdTag, err := r.db.Exec(ctx, insert,
		log.ReminderID,
		log.UserTelegramID,
		log.Date,
		log.ScheduledAt,
		time.Now(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert reminder log: %w", err)
	}
	created := cmdTag.RowsAffected() == 1

	query := `SELECT ` + reminderLogColumns + ` FROM reminder_logs WHERE user_telegram_id = $1 AND date = $2;`
	stored, err := scanReminderLog(r.db.QueryRow(ctx, query, log.UserTelegramID, log.Date))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read reminder log back: %w", err)
	}
	return stored, created, nil
}

// Resolve is the single serialization point of the ledger: the status guard
// in the WHERE clause lets exactly one report win, all later reports observe
// a conflict and change nothing.
func (r *PgxReminderLogRepository) Resolve(ctx context.Context, reminderID string, status domain.ReminderStatus, sentAt time.Time, errorCode, errorMessage *string) (*domain.ReminderLog, error) {
	update := `
        UPDATE reminder_logs
        SET status = $2, sent_at = $3, error_code = $4, error_message = $5, updated_at = $3
        WHERE reminder_id = $1 AND status = 'pending'
        RETURNING ` + reminderLogColumns + `;
    `
	resolved, err := scanReminderLog(r.db.QueryRow(ctx, update, reminderID, status, sentAt, errorCode, errorMessage))
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to resolve reminder log %s: %w", reminderID, err)
	}

	// Zero rows: either the key is unknown or the log already left pending.
	if _, err := r.FindByID(ctx, reminderID); err != nil {
		return nil, err
	}
	return nil, apperrors.ErrConflict
}

func (r *PgxReminderLogRepository) FindByID(ctx context.Context, reminderID string) (*domain.ReminderLog, error) {
	query := `SELECT ` + reminderLogColumns + ` FROM reminder_logs WHERE reminder_id = $1;`
	log, err := scanReminderLog(r.db.QueryRow(ctx, query, reminderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reminder log %s: %w", reminderID, err)
	}
	return log, nil
}
