package domain

import (
	"fmt"
	"time"
)

// Default settings applied when a user is first seen through /auth/verify.
const (
	DefaultTimezone     = "Europe/Moscow"
	DefaultLanguage     = "ru"
	DefaultGoalLines    = 4
	DefaultReminderTime = "18:00"
)

// DefaultReminderDays enables reminders for all seven weekdays (0=Sunday..6=Saturday).
func DefaultReminderDays() []int {
	return []int{1, 2, 3, 4, 5, 6, 0}
}

// User is one Telegram user of the journaling mini-app together with their
// reminder schedule. The reminder core treats it as read-only; only the
// settings endpoints mutate it.
type User struct {
	TelegramID       string
	Timezone         string
	Language         string
	DailyGoalLines   int
	TimerEnabled     bool
	RemindersEnabled bool
	ReminderTime     string // "HH:MM", user-local
	ReminderDays     []int  // weekdays, 0=Sunday..6=Saturday
	SoftSkipUsedAt   *time.Time
	LastRemindedAt   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidateSchedule checks the parts of the config the scheduler depends on:
// the timezone must load, the reminder time must be a valid 24h HH:MM and the
// weekday set must be a subset of 0..6.
func (u *User) ValidateSchedule() error {
	if _, err := time.LoadLocation(u.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", u.Timezone, err)
	}
	if err := ValidateReminderTime(u.ReminderTime); err != nil {
		return err
	}
	return ValidateReminderDays(u.ReminderDays)
}

// ValidateReminderTime accepts 24h "HH:MM" strings only.
func ValidateReminderTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid reminder time %q: %w", s, err)
	}
	return nil
}

// ValidateReminderDays rejects duplicates and values outside 0..6.
func ValidateReminderDays(days []int) error {
	seen := [7]bool{}
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid reminder day %d", d)
		}
		if seen[d] {
			return fmt.Errorf("duplicate reminder day %d", d)
		}
		seen[d] = true
	}
	return nil
}

// RemindsOn reports whether the weekday set includes the given local weekday.
func (u *User) RemindsOn(weekday time.Weekday) bool {
	for _, d := range u.ReminderDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}
