package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/dto"
	"github.com/daily-verse/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles drafts, finishes, the library and the today view.
type entryHandler struct {
	userService   portssvc.UserSvcFacade
	entryService  portssvc.EntrySvcFacade
	promptService portssvc.PromptSvcFacade
}

func newEntryHandler(userService portssvc.UserSvcFacade, entryService portssvc.EntrySvcFacade, promptService portssvc.PromptSvcFacade) *entryHandler {
	return &entryHandler{
		userService:   userService,
		entryService:  entryService,
		promptService: promptService,
	}
}

func registerEntryRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, entryService portssvc.EntrySvcFacade, promptService portssvc.PromptSvcFacade) {
	h := newEntryHandler(userService, entryService, promptService)

	rg.POST("/draft", h.saveDraft)
	rg.POST("/finish", h.finishEntry)
	rg.GET("/entries", h.listEntries)
	rg.GET("/entries/:date", h.getEntry)
	rg.GET("/today", h.today)
}

func (h *entryHandler) saveDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid draft payload: " + err.Error()})
		return
	}

	entry, err := h.entryService.SaveDraft(c.Request.Context(), identity.ID, req)
	if err != nil {
		logger.Error("Failed to save draft", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, dto.SaveEntryResponse{OK: true, ID: entry.ID})
}

func (h *entryHandler) finishEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.FinishEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FinishEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid finish payload: " + err.Error()})
		return
	}

	entry, compliment, err := h.entryService.FinishEntry(c.Request.Context(), identity.ID, req)
	if err != nil {
		logger.Error("Failed to finish entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finish entry"})
		return
	}

	c.JSON(http.StatusOK, dto.SaveEntryResponse{OK: true, ID: entry.ID, Compliment: compliment})
}

func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), identity.ID, c.Query("q"))
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.ToEntryListItems(entries)})
}

func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid date"})
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), identity.ID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to load entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// today assembles the webapp landing payload: the local date in the user's
// timezone, the prompt assigned to it, the entry so far and the goal flags.
func (h *entryHandler) today(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to load user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load today view"})
		return
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	date := time.Now().In(loc).Format("2006-01-02")

	prompt, err := h.promptService.PromptForDate(c.Request.Context(), date)
	if err != nil {
		logger.Error("Failed to resolve prompt", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load today view"})
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), identity.ID, date)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to load today entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load today view"})
		return
	}

	c.JSON(http.StatusOK, dto.TodayResponse{
		Date:           date,
		Prompt:         prompt,
		Entry:          dto.ToTodayEntry(entry),
		DailyGoalLines: user.DailyGoalLines,
		TimerEnabled:   user.TimerEnabled,
	})
}
