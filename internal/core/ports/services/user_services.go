package services

import (
	"context"

	"github.com/daily-verse/backend/internal/core/domain"
	"github.com/daily-verse/backend/internal/dto"
)

// UserSvcFacade exposes user and settings operations to the handlers.
type UserSvcFacade interface {
	// GetOrCreateFromTelegram registers a first-time visitor with default
	// settings, or returns the existing user untouched.
	GetOrCreateFromTelegram(ctx context.Context, identity domain.TelegramUser) (*domain.User, error)
	GetUserByID(ctx context.Context, telegramID string) (*domain.User, error)
	UpdateSettings(ctx context.Context, telegramID string, req dto.UpdateSettingsRequest) (*domain.User, error)
	SetRemindersEnabled(ctx context.Context, telegramID string, enabled bool) error
	// UseSoftSkip consumes the weekly streak protection. Returns
	// apperrors.ErrConflict when it was already used within 7 days.
	UseSoftSkip(ctx context.Context, telegramID string) error
}
