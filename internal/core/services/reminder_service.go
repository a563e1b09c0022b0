package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// reminderMessageText is the fixed template delivered to every due user.
const reminderMessageText = "Пара тихих строк для себя — всего 4 строки?"

// ReminderService owns the reminder core: the due-list computation run on
// every tick and the ledger transition driven by delivery reports.
type ReminderService struct {
	userRepo  portsrepo.UserRepository
	entryRepo portsrepo.EntryRepository
	logRepo   portsrepo.ReminderLogRepository
	webappURL string
	logger    *slog.Logger
}

func NewReminderService(
	userRepo portsrepo.UserRepository,
	entryRepo portsrepo.EntryRepository,
	logRepo portsrepo.ReminderLogRepository,
	webappURL string,
	logger *slog.Logger,
) *ReminderService {
	return &ReminderService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		logRepo:   logRepo,
		webappURL: webappURL,
		logger:    logger,
	}
}

// CollectDue walks every reminder-enabled user and returns the due-list for
// the given instant. A failure for one user is logged and skipped so it can
// never starve the rest of the batch.
func (s *ReminderService) CollectDue(ctx context.Context, now time.Time) ([]domain.DueReminder, error) {
	users, err := s.userRepo.FindUsersWithRemindersEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder-enabled users: %w", err)
	}

	due := []domain.DueReminder{}
	for i := range users {
		reminder, err := s.collectUser(ctx, &users[i], now)
		if err != nil {
			s.logger.Warn("skipping user in reminder batch",
				slog.String("telegram_id", users[i].TelegramID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if reminder != nil {
			due = append(due, *reminder)
		}
	}
	return due, nil
}

// collectUser applies the due test, the done-entry suppression and the
// idempotent ledger creation for a single user. It returns (nil, nil) when
// the user is simply not due.
func (s *ReminderService) collectUser(ctx context.Context, user *domain.User, now time.Time) (*domain.DueReminder, error) {
	if err := user.ValidateSchedule(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", user.Timezone, err)
	}
	local := now.In(loc)

	if local.Format("15:04") != user.ReminderTime || !user.RemindsOn(local.Weekday()) {
		return nil, nil
	}

	date := local.Format("2006-01-02")
	done, err := s.entryRepo.HasDoneEntry(ctx, user.TelegramID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check done entry: %w", err)
	}
	if done {
		return nil, nil
	}

	log, created, err := s.logRepo.GetOrCreate(ctx, domain.ReminderLog{
		ReminderID:     uuid.NewString(),
		UserTelegramID: user.TelegramID,
		Date:           date,
		ScheduledAt:    now,
		Status:         domain.ReminderStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create reminder log: %w", err)
	}

	// Already resolved: a later tick in the same minute must not re-send.
	if log.Status != domain.ReminderStatusPending {
		return nil, nil
	}
	// Reused pending row: emit only if it was scheduled in an earlier minute.
	// That keeps a duplicate tick silent while still retrying a row a crashed
	// dispatcher left behind.
	if !created && !log.ScheduledAt.Truncate(time.Minute).Before(now.Truncate(time.Minute)) {
		return nil, nil
	}

	return &domain.DueReminder{
		TelegramID:  user.TelegramID,
		Locale:      user.Language,
		DeeplinkURL: domain.Deeplink(s.webappURL, domain.DeeplinkTargetToday),
		MessageText: reminderMessageText,
		ReminderKey: log.ReminderID,
	}, nil
}

// Report records the terminal delivery outcome. The repository guarantees at
// most one report wins; on success the owning user's last-reminded timestamp
// is updated as a side effect.
func (s *ReminderService) Report(ctx context.Context, reminderKey string, status domain.ReminderStatus, errorCode, errorMessage *string) error {
	if status != domain.ReminderStatusOK && status != domain.ReminderStatusError {
		return fmt.Errorf("%w: invalid reminder status %q", apperrors.ErrValidation, status)
	}

	now := time.Now()
	resolved, err := s.logRepo.Resolve(ctx, reminderKey, status, now, errorCode, truncateError(errorMessage))
	if err != nil {
		return err
	}

	if status == domain.ReminderStatusOK {
		if err := s.userRepo.SetLastRemindedAt(ctx, resolved.UserTelegramID, now); err != nil {
			// The transition itself is already durable; losing the courtesy
			// timestamp is not worth failing the report.
			s.logger.Warn("failed to update last reminded timestamp",
				slog.String("telegram_id", resolved.UserTelegramID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

func truncateError(msg *string) *string {
	if msg == nil {
		return nil
	}
	runes := []rune(*msg)
	if len(runes) <= domain.MaxReminderErrorLen {
		return msg
	}
	truncated := string(runes[:domain.MaxReminderErrorLen])
	return &truncated
}
