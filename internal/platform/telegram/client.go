package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/daily-verse/backend/internal/core/domain"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// openButtonText labels the inline button attached to every reminder.
const openButtonText = "Открыть и написать 4 строки"

// APIError is a Bot API failure with its error code preserved so the
// dispatcher can classify it.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

// Retryable reports whether the failure is transient: rate limiting or a
// server-side error. Anything else (bad request, blocked bot, unknown chat)
// is permanent.
func (e *APIError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Client is a minimal Telegram Bot API client for reminder delivery.
type Client struct {
	botToken   string
	apiBaseURL string
	httpClient *http.Client
}

// NewClient creates a Bot API client. Per-call deadlines come from the
// context, so the underlying http.Client carries no timeout of its own.
func NewClient(botToken string) *Client {
	return &Client{
		botToken:   botToken,
		apiBaseURL: defaultAPIBaseURL,
		httpClient: &http.Client{},
	}
}

type inlineKeyboardButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      string                `json:"chat_id"`
	Text        string                `json:"text"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendReminder delivers one reminder message with an inline button opening
// the webapp deep link. Failures carry the Bot API error code as *APIError.
func (c *Client) SendReminder(ctx context.Context, reminder domain.DueReminder) error {
	payload := sendMessageRequest{
		ChatID: reminder.TelegramID,
		Text:   reminder.MessageText,
		ReplyMarkup: &inlineKeyboardMarkup{
			InlineKeyboard: [][]inlineKeyboardButton{
				{{Text: openButtonText, URL: reminder.DeeplinkURL}},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sendMessage request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBaseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call telegram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	apiErr := &APIError{Code: resp.StatusCode, Description: "unknown"}
	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil {
		if decoded.ErrorCode != 0 {
			apiErr.Code = decoded.ErrorCode
		}
		if decoded.Description != "" {
			apiErr.Description = decoded.Description
		}
	}
	return apiErr
}
