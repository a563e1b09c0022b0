package dto

import "github.com/daily-verse/backend/internal/core/domain"

// SettingsResponse mirrors the settings block consumed by the webapp.
type SettingsResponse struct {
	DailyGoalLines   int    `json:"dailyGoalLines"`
	TimerEnabled     bool   `json:"timerEnabled"`
	Language         string `json:"language"`
	Timezone         string `json:"timezone"`
	RemindersEnabled bool   `json:"remindersEnabled"`
	ReminderTime     string `json:"reminderTime"`
	ReminderDays     []int  `json:"reminderDays"`
}

// UpdateSettingsRequest carries a full settings replacement. The hhmm and
// timezone rules are registered in the handlers package.
type UpdateSettingsRequest struct {
	DailyGoalLines   int    `json:"dailyGoalLines" binding:"required,min=4"`
	TimerEnabled     *bool  `json:"timerEnabled" binding:"required"`
	Language         string `json:"language" binding:"required,oneof=ru en"`
	Timezone         string `json:"timezone" binding:"required,timezone"`
	RemindersEnabled *bool  `json:"remindersEnabled" binding:"required"`
	ReminderTime     string `json:"reminderTime" binding:"required,hhmm"`
	ReminderDays     []int  `json:"reminderDays" binding:"required,max=7,dive,min=0,max=6"`
}

// ToSettingsResponse converts a domain.User into its settings view.
func ToSettingsResponse(u *domain.User) SettingsResponse {
	days := u.ReminderDays
	if days == nil {
		days = []int{}
	}
	return SettingsResponse{
		DailyGoalLines:   u.DailyGoalLines,
		TimerEnabled:     u.TimerEnabled,
		Language:         u.Language,
		Timezone:         u.Timezone,
		RemindersEnabled: u.RemindersEnabled,
		ReminderTime:     u.ReminderTime,
		ReminderDays:     days,
	}
}
