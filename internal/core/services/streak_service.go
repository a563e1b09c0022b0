package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const streakCacheTTL = 12 * time.Hour

func streakCacheKey(telegramID string) string {
	return "streak:user:" + telegramID
}

type StreakService struct {
	entryRepo portsrepo.EntryRepository
	cache     *redis.Client
	logger    *slog.Logger
}

func NewStreakService(entryRepo portsrepo.EntryRepository, cache *redis.Client, logger *slog.Logger) *StreakService {
	return &StreakService{entryRepo: entryRepo, cache: cache, logger: logger}
}

// Streak computes the current and best consecutive-day runs over the user's
// finished entries in a single pass over the ascending date list.
func (s *StreakService) Streak(ctx context.Context, telegramID string) (*domain.Streak, error) {
	if cached := s.readCache(ctx, telegramID); cached != nil {
		return cached, nil
	}

	dates, err := s.entryRepo.FindDoneDates(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to load done dates: %w", err)
	}

	streak := &domain.Streak{}
	var run int
	var prev time.Time
	for i, raw := range dates {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("malformed entry date %q: %w", raw, err)
		}
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > streak.Best {
			streak.Best = run
		}
		prev = day
	}
	// The current streak is the run ending at the newest entry.
	streak.Current = run

	s.writeCache(ctx, telegramID, streak)
	return streak, nil
}

func (s *StreakService) readCache(ctx context.Context, telegramID string) *domain.Streak {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, streakCacheKey(telegramID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("failed to read streak cache", slog.String("error", err.Error()))
		}
		return nil
	}
	var streak domain.Streak
	if err := json.Unmarshal(raw, &streak); err != nil {
		return nil
	}
	return &streak
}

func (s *StreakService) writeCache(ctx context.Context, telegramID string, streak *domain.Streak) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(streak)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, streakCacheKey(telegramID), raw, streakCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to write streak cache", slog.String("error", err.Error()))
	}
}
