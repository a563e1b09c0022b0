package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
)

// Verification failures. Messages mirror the error bodies the webapp expects.
var (
	ErrInitDataMissing  = errors.New("initData missing")
	ErrHashMissing      = errors.New("hash missing")
	ErrSignatureInvalid = errors.New("initData invalid")
	ErrInitDataExpired  = errors.New("initData expired")
	ErrUserMissing      = errors.New("user missing")
)

// initDataSignKey is the domain-separation constant of the Mini App signing
// scheme: the signing key is HMAC-SHA256(key=initDataSignKey, data=botToken).
const initDataSignKey = "WebAppData"

// maxInitDataAge is how old an auth_date may be before the blob is rejected.
const maxInitDataAge = 24 * time.Hour

// Verifier validates Mini App init data blobs against the bot token.
// Verification is pure apart from the clock.
type Verifier struct {
	botToken string
	now      func() time.Time
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithClock overrides the time source used for the freshness check.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

// NewVerifier creates a Verifier for the given bot token.
func NewVerifier(botToken string, opts ...VerifierOption) *Verifier {
	v := &Verifier{botToken: botToken, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks the signature and freshness of a query-string-encoded init
// data blob and returns the embedded user identity plus the auth timestamp
// (unix seconds, 0 when absent).
func (v *Verifier) Verify(initData string) (*domain.TelegramUser, int64, error) {
	if initData == "" {
		return nil, 0, ErrInitDataMissing
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, 0, ErrHashMissing
	}

	if subtle.ConstantTimeCompare([]byte(v.sign(values)), []byte(hash)) != 1 {
		return nil, 0, ErrSignatureInvalid
	}

	authDate, _ := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if authDate > 0 && v.now().Sub(time.Unix(authDate, 0)) > maxInitDataAge {
		return nil, 0, ErrInitDataExpired
	}

	user, err := parseUser(values.Get("user"))
	if err != nil {
		return nil, 0, err
	}
	return user, authDate, nil
}

// sign computes the expected hex signature over the data-check-string: the
// remaining pairs sorted by key and joined as "key=value" lines.
func (v *Verifier) sign(values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key != "hash" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	checkData := strings.Join(pairs, "\n")

	keyMAC := hmac.New(sha256.New, []byte(initDataSignKey))
	keyMAC.Write([]byte(v.botToken))
	secret := keyMAC.Sum(nil)

	sigMAC := hmac.New(sha256.New, secret)
	sigMAC.Write([]byte(checkData))
	return hex.EncodeToString(sigMAC.Sum(nil))
}

// parseUser extracts the identity from the JSON-encoded user field. The id
// arrives as a JSON number from Telegram but a string is accepted too; it is
// normalized to its decimal string form.
func parseUser(userJSON string) (*domain.TelegramUser, error) {
	if userJSON == "" {
		return nil, ErrUserMissing
	}

	var raw struct {
		ID           json.RawMessage `json:"id"`
		FirstName    string          `json:"first_name"`
		LastName     string          `json:"last_name"`
		Username     string          `json:"username"`
		LanguageCode string          `json:"language_code"`
	}
	if err := json.Unmarshal([]byte(userJSON), &raw); err != nil {
		return nil, ErrUserMissing
	}

	id, err := normalizeID(raw.ID)
	if err != nil {
		return nil, err
	}

	lang := raw.LanguageCode
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	return &domain.TelegramUser{
		ID:           id,
		FirstName:    raw.FirstName,
		LastName:     raw.LastName,
		Username:     raw.Username,
		LanguageCode: lang,
	}, nil
}

func normalizeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", ErrUserMissing
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}
	return "", ErrUserMissing
}
