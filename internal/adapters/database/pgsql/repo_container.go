package pgsql

import (
	portsrepo "github.com/daily-verse/backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryContainer wires all pgx-backed repositories over one pool.
func NewRepositoryContainer(db *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		User:        NewUserRepository(db),
		Entry:       NewEntryRepository(db),
		ReminderLog: NewReminderLogRepository(db),
		Prompt:      NewPromptRepository(db),
	}
}
