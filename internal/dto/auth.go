package dto

import "github.com/daily-verse/backend/internal/core/domain"

// VerifiedUser is the identity block returned by /auth/verify.
type VerifiedUser struct {
	TelegramID string `json:"telegramId"`
	Language   string `json:"language"`
	Timezone   string `json:"timezone"`
}

// VerifyResponse is the payload of a successful /auth/verify call.
type VerifyResponse struct {
	User     VerifiedUser     `json:"user"`
	Settings SettingsResponse `json:"settings"`
}

// ToVerifyResponse builds the /auth/verify payload from the stored user.
func ToVerifyResponse(u *domain.User) VerifyResponse {
	return VerifyResponse{
		User: VerifiedUser{
			TelegramID: u.TelegramID,
			Language:   u.Language,
			Timezone:   u.Timezone,
		},
		Settings: ToSettingsResponse(u),
	}
}
