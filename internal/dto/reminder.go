package dto

// ReportReminderRequest is the dispatcher's terminal outcome report.
// Field names follow the worker wire format (error fields are snake_case).
type ReportReminderRequest struct {
	ReminderKey  string  `json:"reminderKey" binding:"required"`
	Status       string  `json:"status" binding:"required,oneof=ok error"`
	ErrorCode    *string `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

// SetRemindersEnabledRequest toggles reminders for one user (bot command).
type SetRemindersEnabledRequest struct {
	RemindersEnabled *bool `json:"remindersEnabled" binding:"required"`
}

// DeeplinkResponse carries a webapp deep link for the bot.
type DeeplinkResponse struct {
	URL string `json:"url"`
}
