package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	"github.com/daily-verse/backend/internal/platform/telegram"
	"golang.org/x/time/rate"
)

// Sender delivers one reminder message.
type Sender interface {
	SendReminder(ctx context.Context, reminder domain.DueReminder) error
}

// Reporter records the terminal outcome of a delivery attempt.
type Reporter interface {
	Report(ctx context.Context, reminderKey string, status domain.ReminderStatus, errorCode, errorMessage *string) error
}

// defaultBackoffSchedule gives the delay before each retry attempt.
var defaultBackoffSchedule = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

// Dispatcher pushes a due-list through the Bot API with a global throttle,
// bounded retries for transient failures, and a terminal report per
// reminder.
type Dispatcher struct {
	sender      Sender
	reporter    Reporter
	limiter     *rate.Limiter
	sendTimeout time.Duration
	backoff     []time.Duration
	logger      *slog.Logger
}

// Option configures optional Dispatcher behavior.
type Option func(*Dispatcher)

// WithBackoffSchedule overrides the delays between retry attempts. The
// schedule length bounds the number of retries after the first attempt.
func WithBackoffSchedule(schedule []time.Duration) Option {
	return func(d *Dispatcher) { d.backoff = schedule }
}

func NewDispatcher(sender Sender, reporter Reporter, throttle, sendTimeout time.Duration, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender:      sender,
		reporter:    reporter,
		limiter:     rate.NewLimiter(rate.Every(throttle), 1),
		sendTimeout: sendTimeout,
		backoff:     defaultBackoffSchedule,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers every reminder in the batch sequentially. Each reminder
// ends in exactly one report; a reminder that cannot be delivered never
// blocks the rest of the batch.
func (d *Dispatcher) Dispatch(ctx context.Context, batch []domain.DueReminder) {
	for i := range batch {
		if ctx.Err() != nil {
			d.logger.Info("dispatch interrupted",
				slog.Int("remaining", len(batch)-i),
			)
			return
		}
		d.dispatchOne(ctx, batch[i])
	}
}

func (d *Dispatcher) dispatchOne(ctx context.Context, reminder domain.DueReminder) {
	err := d.sendWithRetries(ctx, reminder)
	if err == nil {
		d.report(ctx, reminder.ReminderKey, domain.ReminderStatusOK, nil, nil)
		return
	}

	d.logger.Warn("reminder delivery failed",
		slog.String("reminder_key", reminder.ReminderKey),
		slog.String("error", err.Error()),
	)
	code, message := classify(err)
	d.report(ctx, reminder.ReminderKey, domain.ReminderStatusError, code, message)
}

// sendWithRetries makes the first attempt immediately and retries on
// transient failures only, waiting out the backoff schedule between
// attempts.
func (d *Dispatcher) sendWithRetries(ctx context.Context, reminder domain.DueReminder) error {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}

		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		lastErr = d.sender.SendReminder(sendCtx, reminder)
		cancel()
		if lastErr == nil {
			return nil
		}

		if attempt >= len(d.backoff) || !isRetryable(lastErr) {
			return lastErr
		}

		d.logger.Info("retrying reminder delivery",
			slog.String("reminder_key", reminder.ReminderKey),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", d.backoff[attempt]),
		)
		select {
		case <-time.After(d.backoff[attempt]):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// report records the outcome. A conflict means another worker already
// reported this reminder, which is a safe no-op.
func (d *Dispatcher) report(ctx context.Context, reminderKey string, status domain.ReminderStatus, code, message *string) {
	err := d.reporter.Report(ctx, reminderKey, status, code, message)
	if err == nil {
		return
	}
	if errors.Is(err, apperrors.ErrConflict) {
		d.logger.Info("reminder already reported",
			slog.String("reminder_key", reminderKey),
		)
		return
	}
	d.logger.Error("failed to report reminder outcome",
		slog.String("reminder_key", reminderKey),
		slog.String("status", string(status)),
		slog.String("error", err.Error()),
	)
}

// isRetryable treats Bot API rate limiting and server errors as transient,
// along with plain transport failures that carry no API code.
func isRetryable(err error) bool {
	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}

func classify(err error) (code, message *string) {
	msg := err.Error()
	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		c := apiErrorCode(apiErr.Code)
		return &c, &msg
	}
	c := "transport_error"
	return &c, &msg
}

func apiErrorCode(code int) string {
	switch {
	case code == 403:
		return "forbidden"
	case code == 429:
		return "rate_limited"
	case code >= 500:
		return "server_error"
	default:
		return "bad_request"
	}
}
