package services_test

import (
	"context"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, telegramID string) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersWithRemindersEnabled(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateSettings(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetRemindersEnabled(ctx context.Context, telegramID string, enabled bool) error {
	args := m.Called(ctx, telegramID, enabled)
	return args.Error(0)
}

func (m *MockUserRepository) SetSoftSkipUsedAt(ctx context.Context, telegramID string, usedAt time.Time) error {
	args := m.Called(ctx, telegramID, usedAt)
	return args.Error(0)
}

func (m *MockUserRepository) SetLastRemindedAt(ctx context.Context, telegramID string, remindedAt time.Time) error {
	args := m.Called(ctx, telegramID, remindedAt)
	return args.Error(0)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepository = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) UpsertEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindEntry(ctx context.Context, telegramID, date string) (*domain.Entry, error) {
	args := m.Called(ctx, telegramID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindEntries(ctx context.Context, telegramID, query string) ([]domain.Entry, error) {
	args := m.Called(ctx, telegramID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) HasDoneEntry(ctx context.Context, telegramID, date string) (bool, error) {
	args := m.Called(ctx, telegramID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntryRepository) FindDoneDates(ctx context.Context, telegramID string) ([]string, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock ReminderLogRepository ---
type MockReminderLogRepository struct {
	mock.Mock
}

var _ portsrepo.ReminderLogRepository = (*MockReminderLogRepository)(nil)

func (m *MockReminderLogRepository) GetOrCreate(ctx context.Context, log domain.ReminderLog) (*domain.ReminderLog, bool, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ReminderLog), args.Bool(1), args.Error(2)
}

func (m *MockReminderLogRepository) Resolve(ctx context.Context, reminderID string, status domain.ReminderStatus, sentAt time.Time, errorCode, errorMessage *string) (*domain.ReminderLog, error) {
	args := m.Called(ctx, reminderID, status, sentAt, errorCode, errorMessage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReminderLog), args.Error(1)
}

func (m *MockReminderLogRepository) FindByID(ctx context.Context, reminderID string) (*domain.ReminderLog, error) {
	args := m.Called(ctx, reminderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReminderLog), args.Error(1)
}

// --- Mock PromptRepository ---
type MockPromptRepository struct {
	mock.Mock
}

var _ portsrepo.PromptRepository = (*MockPromptRepository)(nil)

func (m *MockPromptRepository) FindPromptByDate(ctx context.Context, date string) (*domain.Prompt, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prompt), args.Error(1)
}

func (m *MockPromptRepository) SavePrompt(ctx context.Context, prompt domain.Prompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}
