package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/daily-verse/backend/internal/apperrors"
	"github.com/daily-verse/backend/internal/core/domain"
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const promptCacheTTL = 24 * time.Hour

func promptCacheKey(date string) string {
	return "prompt:date:" + date
}

// promptCatalog is the fixed rotation of writing prompts. The date assigned
// to a catalog item is always the requested one, not the item's position.
var promptCatalog = []domain.Prompt{
	{Theme: "Утренний город", Emotion: "надежда", Form: "свободный стих", Constraint: "упомяни звук"},
	{Theme: "Письмо в бутылке", Emotion: "тоска", Form: "AABB", Constraint: "каждая строка 8-10 слов"},
	{Theme: "Тихая комната", Emotion: "спокойствие", Form: "ABAB", Constraint: "без слов \"я\""},
	{Theme: "Случайный попутчик", Emotion: "удивление", Form: "свободный стих", Constraint: "в конце строк повтори одно слово"},
	{Theme: "Переезд", Emotion: "смелость", Form: "сонет-лайт", Constraint: "14 строк максимум"},
	{Theme: "Снегопад", Emotion: "умиротворение", Form: "хокку", Constraint: "3 строки"},
	{Theme: "Рыночная площадь", Emotion: "оживление", Form: "AABB", Constraint: "используй запах"},
	{Theme: "Стеклянный лифт", Emotion: "волнение", Form: "свободный стих", Constraint: "включи один цвет"},
	{Theme: "Старое фото", Emotion: "ностальгия", Form: "ABAB", Constraint: "каждая строка начинается с глагола"},
	{Theme: "Соль и ветер", Emotion: "свобода", Form: "свободный стих", Constraint: "минимум 4 строки"},
	{Theme: "Последний автобус", Emotion: "усталость", Form: "AABB", Constraint: "используй звукопись"},
	{Theme: "Лестничная клетка", Emotion: "ожидание", Form: "ABAB", Constraint: "упомяни свет"},
	{Theme: "Двор без людей", Emotion: "тишина", Form: "свободный стих", Constraint: "каждая строка 6-8 слов"},
	{Theme: "День, когда небо низко", Emotion: "мягкая грусть", Form: "сонет-лайт", Constraint: "ровно 12 строк"},
	{Theme: "Пахнет кофе", Emotion: "уют", Form: "свободный стих", Constraint: "вставь слово \"сейчас\""},
	{Theme: "Билет в один конец", Emotion: "решимость", Form: "ABAB", Constraint: "минимум 4 строки"},
	{Theme: "Забытая песня", Emotion: "меланхолия", Form: "AABB", Constraint: "используй вопрос"},
	{Theme: "Сквозняк", Emotion: "легкость", Form: "свободный стих", Constraint: "не используй запятые"},
	{Theme: "Одинокое дерево", Emotion: "стойкость", Form: "ABAB", Constraint: "упомяни землю"},
	{Theme: "Пустой вокзал", Emotion: "напряжение", Form: "свободный стих", Constraint: "каждая строка начинается с \"и\""},
	{Theme: "Теплый плед", Emotion: "забота", Form: "свободный стих", Constraint: "упомяни текстуру"},
	{Theme: "В тени моста", Emotion: "тайна", Form: "AABB", Constraint: "минимум 4 строки"},
	{Theme: "Почтовый ящик", Emotion: "надежда", Form: "ABAB", Constraint: "каждая строка 7-9 слов"},
	{Theme: "Лунный свет", Emotion: "романтика", Form: "хокку", Constraint: "упомяни воду"},
	{Theme: "Дорога домой", Emotion: "радость", Form: "свободный стих", Constraint: "включи звук шагов"},
	{Theme: "Маленькая победа", Emotion: "гордость", Form: "сонет-лайт", Constraint: "10-12 строк"},
	{Theme: "Закатный поезд", Emotion: "мечтательность", Form: "AABB", Constraint: "каждая строка 8-10 слов"},
	{Theme: "Запах дождя", Emotion: "облегчение", Form: "свободный стих", Constraint: "используй 2 прилагательных"},
	{Theme: "Камни у воды", Emotion: "сосредоточенность", Form: "ABAB", Constraint: "упомяни звук"},
	{Theme: "Тихое \"да\"", Emotion: "благодарность", Form: "свободный стих", Constraint: "минимум 4 строки"},
}

type PromptService struct {
	promptRepo portsrepo.PromptRepository
	cache      *redis.Client
	logger     *slog.Logger
}

func NewPromptService(promptRepo portsrepo.PromptRepository, cache *redis.Client, logger *slog.Logger) *PromptService {
	return &PromptService{promptRepo: promptRepo, cache: cache, logger: logger}
}

// PromptForDate resolves the prompt assigned to a date. The first resolution
// picks deterministically from the catalog and persists the choice, so the
// date keeps the same prompt even if the catalog changes order later.
func (s *PromptService) PromptForDate(ctx context.Context, date string) (*domain.Prompt, error) {
	if cached := s.readCache(ctx, date); cached != nil {
		return cached, nil
	}

	stored, err := s.promptRepo.FindPromptByDate(ctx, date)
	if err == nil {
		s.writeCache(ctx, stored)
		return stored, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	prompt := pickPrompt(date)
	if err := s.promptRepo.SavePrompt(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to persist prompt: %w", err)
	}
	s.writeCache(ctx, &prompt)
	return &prompt, nil
}

// pickPrompt maps a date onto the catalog by summing its numeric parts.
func pickPrompt(date string) domain.Prompt {
	sum := 0
	for _, part := range strings.Split(date, "-") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		sum += n
	}
	if sum < 0 {
		sum = -sum
	}
	prompt := promptCatalog[sum%len(promptCatalog)]
	prompt.Date = date
	return prompt
}

func (s *PromptService) readCache(ctx context.Context, date string) *domain.Prompt {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, promptCacheKey(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("failed to read prompt cache", slog.String("error", err.Error()))
		}
		return nil
	}
	var prompt domain.Prompt
	if err := json.Unmarshal(raw, &prompt); err != nil {
		return nil
	}
	return &prompt
}

func (s *PromptService) writeCache(ctx context.Context, prompt *domain.Prompt) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(prompt)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, promptCacheKey(prompt.Date), raw, promptCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to write prompt cache", slog.String("error", err.Error()))
	}
}
