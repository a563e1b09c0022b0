package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/dto"
	"github.com/daily-verse/backend/internal/middleware"
	"github.com/daily-verse/backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// internalHandler serves the bot worker: the reminder due/report pair, the
// deep link builder and a couple of per-user lookups for bot commands.
type internalHandler struct {
	cfg             *config.Config
	userService     portssvc.UserSvcFacade
	streakService   portssvc.StreakSvcFacade
	reminderService portssvc.ReminderSvcFacade
}

func newInternalHandler(cfg *config.Config, services *portssvc.ServiceContainer) *internalHandler {
	return &internalHandler{
		cfg:             cfg,
		userService:     services.User,
		streakService:   services.Streak,
		reminderService: services.Reminder,
	}
}

func registerInternalRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newInternalHandler(cfg, services)

	rg.GET("/reminders/due", h.dueReminders)
	rg.POST("/reminders/report", h.reportReminder)
	rg.GET("/bot/deeplink", h.deeplink)
	rg.POST("/users/:telegramId/reminders", h.setRemindersEnabled)
	rg.GET("/users/:telegramId/streak", h.userStreak)
}

// dueReminders computes the due-list at request time. The bot worker polls
// this as an alternative to the in-process scheduler.
func (h *internalHandler) dueReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	due, err := h.reminderService.CollectDue(c.Request.Context(), time.Now())
	if err != nil {
		logger.Error("Failed to collect due reminders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect due reminders"})
		return
	}
	if due == nil {
		due = []domain.DueReminder{}
	}

	// The worker decodes the body as a plain array of due records.
	c.JSON(http.StatusOK, due)
}

func (h *internalHandler) reportReminder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReportReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReportReminder", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid report payload: " + err.Error()})
		return
	}

	err := h.reminderService.Report(c.Request.Context(), req.ReminderKey, domain.ReminderStatus(req.Status), req.ErrorCode, req.ErrorMessage)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "reason": "already_reported"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to report reminder", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report reminder"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *internalHandler) deeplink(c *gin.Context) {
	c.JSON(http.StatusOK, dto.DeeplinkResponse{
		URL: domain.Deeplink(h.cfg.WebAppURL, c.Query("target")),
	})
}

func (h *internalHandler) setRemindersEnabled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetRemindersEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRemindersEnabled", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid payload: " + err.Error()})
		return
	}

	err := h.userService.SetRemindersEnabled(c.Request.Context(), c.Param("telegramId"), *req.RemindersEnabled)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to toggle reminders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *internalHandler) userStreak(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	streak, err := h.streakService.Streak(c.Request.Context(), c.Param("telegramId"))
	if err != nil {
		logger.Error("Failed to compute streak", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute streak"})
		return
	}

	c.JSON(http.StatusOK, streak)
}
