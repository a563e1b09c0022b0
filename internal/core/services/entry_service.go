package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/daily-verse/backend/internal/dto"
	"github.com/redis/go-redis/v9"
)

const (
	complimentLong  = "Ты держишь фокус и развиваешь образ — это чувствуется."
	complimentShort = "Есть ясный образ и тепло в строках — продолжай."

	// complimentLengthThreshold splits short sketches from longer pieces.
	complimentLengthThreshold = 120
)

type EntryService struct {
	entryRepo portsrepo.EntryRepository
	cache     *redis.Client
	logger    *slog.Logger
}

func NewEntryService(entryRepo portsrepo.EntryRepository, cache *redis.Client, logger *slog.Logger) *EntryService {
	return &EntryService{entryRepo: entryRepo, cache: cache, logger: logger}
}

func (s *EntryService) SaveDraft(ctx context.Context, telegramID string, req dto.SaveDraftRequest) (*domain.Entry, error) {
	now := time.Now()
	entry, err := s.entryRepo.UpsertEntry(ctx, domain.Entry{
		UserTelegramID: telegramID,
		Date:           req.Date,
		Text:           req.Text,
		Form:           req.Form,
		Mood:           req.Mood,
		Tags:           req.Tags,
		Status:         domain.EntryStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return entry, nil
}

func (s *EntryService) FinishEntry(ctx context.Context, telegramID string, req dto.FinishEntryRequest) (*domain.Entry, string, error) {
	now := time.Now()
	entry, err := s.entryRepo.UpsertEntry(ctx, domain.Entry{
		UserTelegramID: telegramID,
		Date:           req.Date,
		Text:           req.Text,
		Form:           req.Form,
		Mood:           req.Mood,
		Tags:           req.Tags,
		FavoriteLine:   req.FavoriteLine,
		Status:         domain.EntryStatusDone,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to finish entry: %w", err)
	}

	s.invalidateStreak(ctx, telegramID)

	compliment := complimentShort
	if len(req.Text) > complimentLengthThreshold {
		compliment = complimentLong
	}
	return entry, compliment, nil
}

func (s *EntryService) ListEntries(ctx context.Context, telegramID, query string) ([]domain.Entry, error) {
	return s.entryRepo.FindEntries(ctx, telegramID, query)
}

func (s *EntryService) GetEntry(ctx context.Context, telegramID, date string) (*domain.Entry, error) {
	return s.entryRepo.FindEntry(ctx, telegramID, date)
}

// invalidateStreak drops the cached streak so the next read recomputes it.
// Cache trouble is never a reason to fail the write.
func (s *EntryService) invalidateStreak(ctx context.Context, telegramID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, streakCacheKey(telegramID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate streak cache",
			slog.String("telegram_id", telegramID),
			slog.String("error", err.Error()),
		)
	}
}
