package middleware

import (
	"log/slog"
	"net/http"

	"github.com/daily-verse/backend/internal/platform/telegram"
	"github.com/gin-gonic/gin"
)

// initDataHeader carries the signed session blob on every webapp request.
const initDataHeader = "x-telegram-init-data"

// InitDataAuth verifies the Telegram session blob and stores the trusted
// identity in the context. Requests without a valid blob never reach the
// handler.
func InitDataAuth(verifier *telegram.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		identity, _, err := verifier.Verify(c.GetHeader(initDataHeader))
		if err != nil {
			logger.Warn("initData verification failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(string(telegramUserKey), *identity)
		c.Next()
	}
}
