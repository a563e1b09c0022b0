package services

import (
	"log/slog"

	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

// NewServiceContainer wires all application services. The cache client may
// be nil, in which case caching is simply skipped.
func NewServiceContainer(
	repos *portsrepo.RepositoryContainer,
	cache *redis.Client,
	webappURL string,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:     NewUserService(repos.User),
		Entry:    NewEntryService(repos.Entry, cache, logger),
		Prompt:   NewPromptService(repos.Prompt, cache, logger),
		Streak:   NewStreakService(repos.Entry, cache, logger),
		Suggest:  NewSuggestService(),
		Reminder: NewReminderService(repos.User, repos.Entry, repos.ReminderLog, webappURL, logger),
	}
}
