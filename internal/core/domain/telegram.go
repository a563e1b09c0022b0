package domain

// TelegramUser is the verified identity extracted from a signed init data
// blob. The ID is always the decimal string form of the Telegram user id.
type TelegramUser struct {
	ID           string
	FirstName    string
	LastName     string
	Username     string
	LanguageCode string
}
