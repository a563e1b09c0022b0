package dispatch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	"github.com/daily-verse/backend/internal/dispatch"
	"github.com/daily-verse/backend/internal/platform/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBackoff keeps the retry paths fast while preserving the shape of the
// real schedule.
var testBackoff = []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 8 * time.Millisecond}

// fakeSender scripts per-attempt outcomes and records attempt timings.
type fakeSender struct {
	results  []error
	attempts []time.Time
}

func (f *fakeSender) SendReminder(ctx context.Context, reminder domain.DueReminder) error {
	f.attempts = append(f.attempts, time.Now())
	idx := len(f.attempts) - 1
	if idx >= len(f.results) {
		return f.results[len(f.results)-1]
	}
	return f.results[idx]
}

// blockingSender never answers; every attempt runs into the per-attempt
// deadline.
type blockingSender struct {
	calls int
}

func (b *blockingSender) SendReminder(ctx context.Context, reminder domain.DueReminder) error {
	b.calls++
	<-ctx.Done()
	return ctx.Err()
}

type recordedReport struct {
	key    string
	status domain.ReminderStatus
	code   *string
}

// fakeReporter records terminal reports and can return a scripted error.
type fakeReporter struct {
	reports []recordedReport
	err     error
}

func (f *fakeReporter) Report(ctx context.Context, reminderKey string, status domain.ReminderStatus, errorCode, errorMessage *string) error {
	f.reports = append(f.reports, recordedReport{key: reminderKey, status: status, code: errorCode})
	return f.err
}

func newTestDispatcher(sender dispatch.Sender, reporter dispatch.Reporter) *dispatch.Dispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dispatch.NewDispatcher(sender, reporter, time.Millisecond, time.Second, logger,
		dispatch.WithBackoffSchedule(testBackoff))
}

func testReminder() domain.DueReminder {
	return domain.DueReminder{
		TelegramID:  "42",
		Locale:      "ru",
		DeeplinkURL: "https://journal.example/?startapp=today",
		MessageText: "msg",
		ReminderKey: "key-1",
	}
}

func TestDispatch_SuccessFirstTry(t *testing.T) {
	sender := &fakeSender{results: []error{nil}}
	reporter := &fakeReporter{}

	newTestDispatcher(sender, reporter).Dispatch(context.Background(), []domain.DueReminder{testReminder()})

	assert.Len(t, sender.attempts, 1)
	require.Len(t, reporter.reports, 1)
	assert.Equal(t, domain.ReminderStatusOK, reporter.reports[0].status)
	assert.Equal(t, "key-1", reporter.reports[0].key)
}

func TestDispatch_PermanentErrorNotRetried(t *testing.T) {
	blocked := &telegram.APIError{Code: 403, Description: "bot was blocked by the user"}
	sender := &fakeSender{results: []error{blocked}}
	reporter := &fakeReporter{}

	newTestDispatcher(sender, reporter).Dispatch(context.Background(), []domain.DueReminder{testReminder()})

	assert.Len(t, sender.attempts, 1)
	require.Len(t, reporter.reports, 1)
	assert.Equal(t, domain.ReminderStatusError, reporter.reports[0].status)
	require.NotNil(t, reporter.reports[0].code)
	assert.Equal(t, "forbidden", *reporter.reports[0].code)
}

func TestDispatch_RetryableErrorExhaustsAttempts(t *testing.T) {
	flooded := &telegram.APIError{Code: 429, Description: "Too Many Requests"}
	sender := &fakeSender{results: []error{flooded}}
	reporter := &fakeReporter{}

	newTestDispatcher(sender, reporter).Dispatch(context.Background(), []domain.DueReminder{testReminder()})

	// First attempt plus three retries.
	assert.Len(t, sender.attempts, 4)
	require.Len(t, reporter.reports, 1)
	assert.Equal(t, domain.ReminderStatusError, reporter.reports[0].status)
	require.NotNil(t, reporter.reports[0].code)
	assert.Equal(t, "rate_limited", *reporter.reports[0].code)

	// Every retry waits out at least its backoff slot.
	for i := 1; i < len(sender.attempts); i++ {
		gap := sender.attempts[i].Sub(sender.attempts[i-1])
		assert.GreaterOrEqual(t, gap, testBackoff[i-1])
	}
}

func TestDispatch_RecoversMidRetry(t *testing.T) {
	serverErr := &telegram.APIError{Code: 502, Description: "Bad Gateway"}
	sender := &fakeSender{results: []error{serverErr, nil}}
	reporter := &fakeReporter{}

	newTestDispatcher(sender, reporter).Dispatch(context.Background(), []domain.DueReminder{testReminder()})

	assert.Len(t, sender.attempts, 2)
	require.Len(t, reporter.reports, 1)
	assert.Equal(t, domain.ReminderStatusOK, reporter.reports[0].status)
}

func TestDispatch_TransportErrorClassified(t *testing.T) {
	sender := &fakeSender{results: []error{errors.New("connection refused")}}
	reporter := &fakeReporter{}

	newTestDispatcher(sender, reporter).Dispatch(context.Background(), []domain.DueReminder{testReminder()})

	// Plain transport errors are treated as transient, then reported.
	assert.Len(t, sender.attempts, 4)
	require.Len(t, reporter.reports, 1)
	require.NotNil(t, reporter.reports[0].code)
	assert.Equal(t, "transport_error", *reporter.reports[0].code)
}

func TestDispatch_HungAttemptConsumesRetryBudget(t *testing.T) {
	sender := &blockingSender{}
	reporter := &fakeReporter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Each attempt hangs past the 5ms per-attempt deadline, so the timeout
	// must burn a retry slot instead of stalling the dispatcher.
	d := dispatch.NewDispatcher(sender, reporter, time.Millisecond, 5*time.Millisecond, logger,
		dispatch.WithBackoffSchedule(testBackoff))
	d.Dispatch(context.Background(), []domain.DueReminder{testReminder()})

	assert.Equal(t, 4, sender.calls)
	require.Len(t, reporter.reports, 1)
	assert.Equal(t, domain.ReminderStatusError, reporter.reports[0].status)
	require.NotNil(t, reporter.reports[0].code)
	assert.Equal(t, "transport_error", *reporter.reports[0].code)
}

func TestDispatch_ConflictReportTolerated(t *testing.T) {
	sender := &fakeSender{results: []error{nil, nil}}
	reporter := &fakeReporter{err: apperrors.ErrConflict}

	// Both reminders must still be processed despite every report
	// conflicting.
	newTestDispatcher(sender, reporter).Dispatch(context.Background(), []domain.DueReminder{testReminder(), testReminder()})

	assert.Len(t, sender.attempts, 2)
	assert.Len(t, reporter.reports, 2)
}

func TestDispatch_CancelledContextStopsBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sender := &fakeSender{results: []error{nil}}
	reporter := &fakeReporter{}

	newTestDispatcher(sender, reporter).Dispatch(ctx, []domain.DueReminder{testReminder(), testReminder()})

	assert.Empty(t, sender.attempts)
	assert.Empty(t, reporter.reports)
}
