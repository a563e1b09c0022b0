package services

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"

	"github.com/daily-verse/backend/internal/dto"
)

// Canned pools for the mock suggestion modes. Deterministic picks keep the
// endpoint stable for the same draft and seed.
var (
	continueLines = []string{
		"и мысль опять качается, как лодка",
		"я слышу паузу, где прячется ответ",
		"вдох медленный, а дальше — только свет",
		"молчит окно, но шепчет мой чердак",
		"пусть слово станет жестом тишины",
		"на краешке строки дрожит тепло",
	}
	rhymeWords = []string{
		"огонь",
		"ладонь",
		"звень",
		"день",
		"тень",
		"камин",
		"туман",
		"дождь",
		"круж",
		"сон",
	}
)

const softEditPreviewLen = 120

// SuggestService fakes an assistant: every mode is a pure function of the
// request, no external calls.
type SuggestService struct{}

func NewSuggestService() *SuggestService {
	return &SuggestService{}
}

func (s *SuggestService) Continue(req dto.SuggestRequest) dto.SuggestResponse {
	seed := hashSeed("continue-" + req.Text + "-" + req.Seed)
	return dto.SuggestResponse{Items: pickFrom(continueLines, seed, 3)}
}

func (s *SuggestService) Rhymes(req dto.SuggestRequest) dto.SuggestResponse {
	seed := hashSeed("rhymes-" + req.Text + "-" + req.Seed)
	return dto.SuggestResponse{Items: pickFrom(rhymeWords, seed, 10)}
}

func (s *SuggestService) SoftEdit(req dto.SuggestRequest) dto.SuggestResponse {
	before := req.Text
	if runes := []rune(before); len(runes) > softEditPreviewLen {
		before = string(runes[:softEditPreviewLen])
	}
	if before == "" {
		before = "Твой текст"
	}
	after := strings.Join(strings.Fields(before), " ") + "..."
	return dto.SuggestResponse{
		Items: []string{"мягкая правка готова"},
		Diff:  &dto.SuggestDiff{Before: before, After: after},
	}
}

// hashSeed folds the input into a small number via the first four bytes of
// its SHA-256 digest.
func hashSeed(input string) uint32 {
	sum := sha256.Sum256([]byte(input))
	return binary.BigEndian.Uint32(sum[:4])
}

func pickFrom(items []string, seed uint32, count int) []string {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx := (int(seed) + i*7) % len(items)
		result = append(result, items[idx])
	}
	return result
}
