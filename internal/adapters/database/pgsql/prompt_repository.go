package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPromptRepository struct {
	db *pgxpool.Pool
}

func NewPromptRepository(db *pgxpool.Pool) portsrepo.PromptRepository {
	return &PgxPromptRepository{db: db}
}

// Ensure PgxPromptRepository implements portsrepo.PromptRepository
var _ portsrepo.PromptRepository = (*PgxPromptRepository)(nil)

func (r *PgxPromptRepository) FindPromptByDate(ctx context.Context, date string) (*domain.Prompt, error) {
	query := `SELECT date, theme, emotion, form, constraint_text FROM prompts WHERE date = $1;`
	var p domain.Prompt
	err := r.db.QueryRow(ctx, query, date).Scan(&p.Date, &p.Theme, &p.Emotion, &p.Form, &p.Constraint)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find prompt for %s: %w", date, err)
	}
	return &p, nil
}

func (r *PgxPromptRepository) SavePrompt(ctx context.Context, prompt domain.Prompt) error {
	query := `
        INSERT INTO prompts (date, theme, emotion, form, constraint_text)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (date) DO NOTHING;
    `
	_, err := r.db.Exec(ctx, query, prompt.Date, prompt.Theme, prompt.Emotion, prompt.Form, prompt.Constraint)
	if err != nil {
		return fmt.Errorf("failed to save prompt: %w", err)
	}
	return nil
}
