package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daily-verse/backend/internal/apperrors"
	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/dto"
	"github.com/daily-verse/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles settings reads/writes and the soft-skip action.
type settingsHandler struct {
	userService portssvc.UserSvcFacade
}

func newSettingsHandler(userService portssvc.UserSvcFacade) *settingsHandler {
	return &settingsHandler{userService: userService}
}

func registerSettingsRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newSettingsHandler(userService)

	rg.GET("/settings", h.getSettings)
	rg.POST("/settings", h.updateSettings)
	rg.POST("/soft-skip", h.softSkip)
}

func (h *settingsHandler) getSettings(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(user))
}

func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid settings payload: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateSettings(c.Request.Context(), identity.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Settings validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logger.Error("Failed to update settings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(user))
}

func (h *settingsHandler) softSkip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := middleware.GetTelegramUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.userService.UseSoftSkip(c.Request.Context(), identity.ID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "reason": "already_used"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logger.Error("Failed to use soft skip", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to use soft skip"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
