package telegram_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/daily-verse/backend/internal/platform/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:TEST_TOKEN"

func verifierAt(now time.Time) *telegram.Verifier {
	return telegram.NewVerifier(testBotToken, telegram.WithClock(func() time.Time { return now }))
}

// signInitData builds a correctly signed blob the way the Telegram client
// would, so the verifier can be tested end to end.
func signInitData(botToken string, values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	checkData := strings.Join(pairs, "\n")

	keyMAC := hmac.New(sha256.New, []byte("WebAppData"))
	keyMAC.Write([]byte(botToken))
	sigMAC := hmac.New(sha256.New, keyMAC.Sum(nil))
	sigMAC.Write([]byte(checkData))

	values.Set("hash", hex.EncodeToString(sigMAC.Sum(nil)))
	return values.Encode()
}

func freshInitData(t *testing.T, userJSON string, authDate time.Time) string {
	t.Helper()
	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("query_id", "AAE1")
	if userJSON != "" {
		values.Set("user", userJSON)
	}
	return signInitData(testBotToken, values)
}

func TestVerify_ValidBlob(t *testing.T) {
	v := verifierAt(time.Unix(1700000000, 0).Add(time.Hour))

	blob := freshInitData(t, `{"id":42,"first_name":"Ann","username":"ann","language_code":"en"}`, time.Unix(1700000000, 0))

	user, authDate, err := v.Verify(blob)
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "Ann", user.FirstName)
	assert.Equal(t, "en", user.LanguageCode)
	assert.Equal(t, int64(1700000000), authDate)
}

func TestVerify_StringID(t *testing.T) {
	v := verifierAt(time.Unix(1700000000, 0))

	blob := freshInitData(t, `{"id":"987654321","first_name":"Bo"}`, time.Unix(1700000000, 0))

	user, _, err := v.Verify(blob)
	require.NoError(t, err)
	assert.Equal(t, "987654321", user.ID)
}

func TestVerify_LanguageDefaultsToRu(t *testing.T) {
	v := verifierAt(time.Unix(1700000000, 0))

	blob := freshInitData(t, `{"id":42,"first_name":"Ann"}`, time.Unix(1700000000, 0))

	user, _, err := v.Verify(blob)
	require.NoError(t, err)
	assert.Equal(t, "ru", user.LanguageCode)
}

func TestVerify_TamperedBlob(t *testing.T) {
	v := verifierAt(time.Unix(1700000000, 0))

	blob := freshInitData(t, `{"id":42,"first_name":"Ann"}`, time.Unix(1700000000, 0))
	tampered := blob + "&premium=1"

	_, _, err := v.Verify(tampered)
	assert.ErrorIs(t, err, telegram.ErrSignatureInvalid)
}

func TestVerify_FlippedHashCharRejected(t *testing.T) {
	v := verifierAt(time.Unix(1700000000, 0))

	blob := freshInitData(t, `{"id":42,"first_name":"Ann"}`, time.Unix(1700000000, 0))
	values, err := url.ParseQuery(blob)
	require.NoError(t, err)

	hash := values.Get("hash")
	require.NotEmpty(t, hash)
	flipped := "0"
	if hash[0] == '0' {
		flipped = "1"
	}
	values.Set("hash", flipped+hash[1:])

	_, _, err = v.Verify(values.Encode())
	assert.ErrorIs(t, err, telegram.ErrSignatureInvalid)
}

func TestVerify_WrongToken(t *testing.T) {
	v := telegram.NewVerifier("other:TOKEN",
		telegram.WithClock(func() time.Time { return time.Unix(1700000000, 0) }))

	blob := freshInitData(t, `{"id":42}`, time.Unix(1700000000, 0))

	_, _, err := v.Verify(blob)
	assert.ErrorIs(t, err, telegram.ErrSignatureInvalid)
}

func TestVerify_Expired(t *testing.T) {
	authDate := time.Unix(1700000000, 0)
	v := verifierAt(authDate.Add(25 * time.Hour))

	blob := freshInitData(t, `{"id":42}`, authDate)

	_, _, err := v.Verify(blob)
	assert.ErrorIs(t, err, telegram.ErrInitDataExpired)
}

func TestVerify_MissingPieces(t *testing.T) {
	v := verifierAt(time.Unix(1700000000, 0))

	_, _, err := v.Verify("")
	assert.ErrorIs(t, err, telegram.ErrInitDataMissing)

	_, _, err = v.Verify("auth_date=1700000000&user=%7B%22id%22%3A42%7D")
	assert.ErrorIs(t, err, telegram.ErrHashMissing)

	blob := freshInitData(t, "", time.Unix(1700000000, 0))
	_, _, err = v.Verify(blob)
	assert.ErrorIs(t, err, telegram.ErrUserMissing)
}
