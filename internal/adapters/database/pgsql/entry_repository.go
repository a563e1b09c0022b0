package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	db *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{db: db}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepository
var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

const entryColumns = `id, user_telegram_id, date, text, form, mood, tags, favorite_line, status,
	created_at, updated_at`

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var e domain.Entry
	var tagsJSON []byte
	err := row.Scan(
		&e.ID,
		&e.UserTelegramID,
		&e.Date,
		&e.Text,
		&e.Form,
		&e.Mood,
		&tagsJSON,
		&e.FavoriteLine,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &e.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	return &e, nil
}

func (r *PgxEntryRepository) UpsertEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	tagsJSON, err := json.Marshal(entry.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	// A draft save must not wipe a favorite line picked on a previous finish;
	// a finish always writes the submitted value, including null.
	query := `
        INSERT INTO entries (user_telegram_id, date, text, form, mood, tags, favorite_line, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
        ON CONFLICT (user_telegram_id, date) DO UPDATE SET
            text = EXCLUDED.text,
            form = EXCLUDED.form,
            mood = EXCLUDED.mood,
            tags = EXCLUDED.tags,
            favorite_line = CASE WHEN EXCLUDED.status = 'draft' THEN entries.favorite_line ELSE EXCLUDED.favorite_line END,
            status = EXCLUDED.status,
            updated_at = now()
        RETURNING ` + entryColumns + `;
    `
	stored, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.UserTelegramID,
		entry.Date,
		entry.Text,
		entry.Form,
		entry.Mood,
		tagsJSON,
		entry.FavoriteLine,
		entry.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert entry: %w", err)
	}
	return stored, nil
}

func (r *PgxEntryRepository) FindEntry(ctx context.Context, telegramID, date string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_telegram_id = $1 AND date = $2;`
	entry, err := scanEntry(r.db.QueryRow(ctx, query, telegramID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry for %s on %s: %w", telegramID, date, err)
	}
	return entry, nil
}

func (r *PgxEntryRepository) FindEntries(ctx context.Context, telegramID, query string) ([]domain.Entry, error) {
	sql := `
        SELECT ` + entryColumns + `
        FROM entries
        WHERE user_telegram_id = $1 AND ($2 = '' OR text ILIKE '%' || $2 || '%')
        ORDER BY date DESC;
    `
	rows, err := r.db.Query(ctx, sql, telegramID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxEntryRepository) HasDoneEntry(ctx context.Context, telegramID, date string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM entries WHERE user_telegram_id = $1 AND date = $2 AND status = 'done');`
	var exists bool
	if err := r.db.QueryRow(ctx, query, telegramID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check done entry: %w", err)
	}
	return exists, nil
}

func (r *PgxEntryRepository) FindDoneDates(ctx context.Context, telegramID string) ([]string, error) {
	query := `SELECT DISTINCT date FROM entries WHERE user_telegram_id = $1 AND status = 'done' ORDER BY date ASC;`
	rows, err := r.db.Query(ctx, query, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to query done dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan date row: %w", err)
		}
		dates = append(dates, date)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating date rows: %w", rows.Err())
	}
	return dates, nil
}
