package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type streakHandler struct {
	streakService portssvc.StreakSvcFacade
}

func newStreakHandler(streakService portssvc.StreakSvcFacade) *streakHandler {
	return &streakHandler{streakService: streakService}
}

func registerStreakRoutes(rg *gin.RouterGroup, streakService portssvc.StreakSvcFacade) {
	h := newStreakHandler(streakService)

	rg.GET("/streak", h.getStreak)
}

func (h *streakHandler) getStreak(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	streak, err := h.streakService.Streak(c.Request.Context(), identity.ID)
	if err != nil {
		logger.Error("Failed to compute streak", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute streak"})
		return
	}

	c.JSON(http.StatusOK, streak)
}
