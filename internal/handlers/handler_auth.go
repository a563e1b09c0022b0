package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/dto"
	"github.com/daily-verse/backend/internal/middleware"
	"github.com/daily-verse/backend/internal/platform/telegram"
	"github.com/gin-gonic/gin"
)

// authHandler turns a signed session blob into a stored user.
type authHandler struct {
	verifier    *telegram.Verifier
	userService portssvc.UserSvcFacade
}

func newAuthHandler(verifier *telegram.Verifier, userService portssvc.UserSvcFacade) *authHandler {
	return &authHandler{verifier: verifier, userService: userService}
}

// verify validates the init data blob, registers a first-time visitor and
// returns the identity with its settings.
func (h *authHandler) verify(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, _, err := h.verifier.Verify(c.GetHeader("x-telegram-init-data"))
	if err != nil {
		logger.Warn("initData verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetOrCreateFromTelegram(c.Request.Context(), *identity)
	if err != nil {
		logger.Error("Failed to get or create user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVerifyResponse(user))
}
