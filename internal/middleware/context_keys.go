package middleware

import (
	"github.com/daily-verse/backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// telegramUserKey is the key used to store the verified Telegram identity in
// the Gin context.
const telegramUserKey = contextKey("telegramUser")

// GetTelegramUserFromContext retrieves the verified Telegram identity set by
// InitDataAuth. The boolean reports whether it was found.
func GetTelegramUserFromContext(c *gin.Context) (domain.TelegramUser, bool) {
	val, exists := c.Get(string(telegramUserKey))
	if !exists {
		return domain.TelegramUser{}, false
	}
	user, ok := val.(domain.TelegramUser)
	if !ok {
		return domain.TelegramUser{}, false
	}
	return user, true
}
