package domain

import "time"

// ReminderStatus is the state of one reminder attempt. A log starts pending
// and moves to exactly one of the terminal states; there is no way back.
type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "pending"
	ReminderStatusOK      ReminderStatus = "ok"
	ReminderStatusError   ReminderStatus = "error"
)

// MaxReminderErrorLen bounds the stored delivery error message.
const MaxReminderErrorLen = 255

// ReminderLog is the durable record of one reminder attempt for one user on
// one local calendar date. Logs are never deleted; they are the audit trail
// for "was this user notified today".
type ReminderLog struct {
	ReminderID     string
	UserTelegramID string
	Date           string // "YYYY-MM-DD" in the user's timezone at schedule time
	ScheduledAt    time.Time
	SentAt         *time.Time
	Status         ReminderStatus
	ErrorCode      *string
	ErrorMessage   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DueReminder is one record of the due-list handed to the delivery
// dispatcher. ReminderKey is the opaque idempotency key of the ledger row.
type DueReminder struct {
	TelegramID  string `json:"telegramId"`
	Locale      string `json:"locale"`
	DeeplinkURL string `json:"deeplinkUrl"`
	MessageText string `json:"messageText"`
	ReminderKey string `json:"reminderKey"`
}
