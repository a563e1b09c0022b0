package services

import (
	"context"
	"fmt"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/daily-verse/backend/internal/dto"
)

// softSkipCooldown is how long a user waits between streak protections.
const softSkipCooldown = 7 * 24 * time.Hour

type UserService struct {
	userRepo portsrepo.UserRepository
}

func NewUserService(userRepo portsrepo.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetOrCreateFromTelegram registers a verified first-time visitor with the
// default settings; returning visitors keep whatever they configured.
func (s *UserService) GetOrCreateFromTelegram(ctx context.Context, identity domain.TelegramUser) (*domain.User, error) {
	now := time.Now()
	language := identity.LanguageCode
	if language == "" {
		language = domain.DefaultLanguage
	}

	user, err := s.userRepo.SaveUser(ctx, domain.User{
		TelegramID:       identity.ID,
		Timezone:         domain.DefaultTimezone,
		Language:         language,
		DailyGoalLines:   domain.DefaultGoalLines,
		TimerEnabled:     true,
		RemindersEnabled: true,
		ReminderTime:     domain.DefaultReminderTime,
		ReminderDays:     domain.DefaultReminderDays(),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, telegramID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, telegramID)
}

func (s *UserService) UpdateSettings(ctx context.Context, telegramID string, req dto.UpdateSettingsRequest) (*domain.User, error) {
	// Binding marks the toggles required, but the service must not trust
	// every caller to have gone through it.
	if req.TimerEnabled == nil || req.RemindersEnabled == nil {
		return nil, fmt.Errorf("%w: timerEnabled and remindersEnabled are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	user.Timezone = req.Timezone
	user.Language = req.Language
	user.DailyGoalLines = req.DailyGoalLines
	user.TimerEnabled = *req.TimerEnabled
	user.RemindersEnabled = *req.RemindersEnabled
	user.ReminderTime = req.ReminderTime
	user.ReminderDays = req.ReminderDays
	user.UpdatedAt = time.Now()

	// Binding validates field shapes; the cross-field schedule rules live in
	// the domain (duplicate weekdays, loadable timezone).
	if err := user.ValidateSchedule(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.userRepo.UpdateSettings(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return user, nil
}

func (s *UserService) SetRemindersEnabled(ctx context.Context, telegramID string, enabled bool) error {
	return s.userRepo.SetRemindersEnabled(ctx, telegramID, enabled)
}

// UseSoftSkip consumes the weekly streak protection.
func (s *UserService) UseSoftSkip(ctx context.Context, telegramID string) error {
	user, err := s.userRepo.FindUserByID(ctx, telegramID)
	if err != nil {
		return err
	}

	now := time.Now()
	if user.SoftSkipUsedAt != nil && now.Sub(*user.SoftSkipUsedAt) < softSkipCooldown {
		return apperrors.ErrConflict
	}
	return s.userRepo.SetSoftSkipUsedAt(ctx, telegramID, now)
}
