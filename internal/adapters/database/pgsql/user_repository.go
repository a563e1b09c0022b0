package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `telegram_id, timezone, language, daily_goal_lines, timer_enabled,
	reminders_enabled, reminder_time, reminder_days, soft_skip_used_at, last_reminded_at,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var daysJSON []byte
	err := row.Scan(
		&u.TelegramID,
		&u.Timezone,
		&u.Language,
		&u.DailyGoalLines,
		&u.TimerEnabled,
		&u.RemindersEnabled,
		&u.ReminderTime,
		&daysJSON,
		&u.SoftSkipUsedAt,
		&u.LastRemindedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(daysJSON) > 0 {
		if err := json.Unmarshal(daysJSON, &u.ReminderDays); err != nil {
			return nil, fmt.Errorf("failed to decode reminder days: %w", err)
		}
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	daysJSON, err := json.Marshal(user.ReminderDays)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reminder days: %w", err)
	}

	query := `
        INSERT INTO users (telegram_id, timezone, language, daily_goal_lines, timer_enabled,
            reminders_enabled, reminder_time, reminder_days, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
        ON CONFLICT (telegram_id) DO NOTHING;
    `
	_, err = r.db.Exec(ctx, query,
		user.TelegramID,
		user.Timezone,
		user.Language,
		user.DailyGoalLines,
		user.TimerEnabled,
		user.RemindersEnabled,
		user.ReminderTime,
		daysJSON,
		user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	// Re-read so concurrent first visits all observe the same stored row.
	return r.FindUserByID(ctx, user.TelegramID)
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, telegramID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", telegramID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUsersWithRemindersEnabled(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reminders_enabled = true ORDER BY telegram_id;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder-enabled users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateSettings(ctx context.Context, user domain.User) error {
	daysJSON, err := json.Marshal(user.ReminderDays)
	if err != nil {
		return fmt.Errorf("failed to encode reminder days: %w", err)
	}

	query := `
        UPDATE users
        SET timezone = $1, language = $2, daily_goal_lines = $3, timer_enabled = $4,
            reminders_enabled = $5, reminder_time = $6, reminder_days = $7, updated_at = $8
        WHERE telegram_id = $9;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		user.Timezone,
		user.Language,
		user.DailyGoalLines,
		user.TimerEnabled,
		user.RemindersEnabled,
		user.ReminderTime,
		daysJSON,
		user.UpdatedAt,
		user.TelegramID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetRemindersEnabled(ctx context.Context, telegramID string, enabled bool) error {
	query := `UPDATE users SET reminders_enabled = $1, updated_at = $2 WHERE telegram_id = $3;`
	cmdTag, err := r.db.Exec(ctx, query, enabled, time.Now(), telegramID)
	if err != nil {
		return fmt.Errorf("failed to set reminders enabled: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetSoftSkipUsedAt(ctx context.Context, telegramID string, usedAt time.Time) error {
	query := `UPDATE users SET soft_skip_used_at = $1, updated_at = $1 WHERE telegram_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, usedAt, telegramID)
	if err != nil {
		return fmt.Errorf("failed to set soft skip timestamp: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetLastRemindedAt(ctx context.Context, telegramID string, remindedAt time.Time) error {
	query := `UPDATE users SET last_reminded_at = $1, updated_at = $1 WHERE telegram_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, remindedAt, telegramID)
	if err != nil {
		return fmt.Errorf("failed to set last reminded timestamp: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
