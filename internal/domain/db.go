package domain

import "context"

// Database defines lifecycle operations for the underlying database and
// hands out the repositories it backs. Each implementation (SQLite,
// Postgres) owns its own migration files and strategy, so the storage
// backend is chosen once at startup.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
	Users() UserRepository
	Tasks() TaskRepository
}
