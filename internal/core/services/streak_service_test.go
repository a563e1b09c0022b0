package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/daily-verse/backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStreakService(entryRepo *MockEntryRepository) *services.StreakService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewStreakService(entryRepo, nil, logger)
}

func TestStreak_Empty(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	entryRepo.On("FindDoneDates", context.Background(), "42").Return([]string{}, nil)

	streak, err := newStreakService(entryRepo).Streak(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, 0, streak.Current)
	assert.Equal(t, 0, streak.Best)
}

func TestStreak_SingleDay(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	entryRepo.On("FindDoneDates", context.Background(), "42").Return([]string{"2025-01-15"}, nil)

	streak, err := newStreakService(entryRepo).Streak(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 1, streak.Best)
}

func TestStreak_CurrentRunShorterThanBest(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	entryRepo.On("FindDoneDates", context.Background(), "42").Return([]string{
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04",
		"2025-01-10", "2025-01-11",
	}, nil)

	streak, err := newStreakService(entryRepo).Streak(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 4, streak.Best)
}

func TestStreak_RunAcrossMonthBoundary(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	entryRepo.On("FindDoneDates", context.Background(), "42").Return([]string{
		"2025-01-30", "2025-01-31", "2025-02-01",
	}, nil)

	streak, err := newStreakService(entryRepo).Streak(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Best)
}

func TestStreak_GapsResetTheRun(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	entryRepo.On("FindDoneDates", context.Background(), "42").Return([]string{
		"2025-01-01", "2025-01-03", "2025-01-05",
	}, nil)

	streak, err := newStreakService(entryRepo).Streak(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 1, streak.Best)
}
