// Package postgres implements the domain repositories on PostgreSQL using a
// pgx connection pool. Schema changes are applied with goose.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/repository/postgres/migrations"
)

const uniqueViolation = "23505"

// DB wraps a pgx pool and implements domain.Database.
type DB struct {
	Pool  *pgxpool.Pool
	dsn   string
	users *UserRepository
	tasks *TaskRepository
}

var _ domain.Database = (*DB)(nil)

// New connects to the database at dsn and verifies the connection.
func New(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{Pool: pool, dsn: dsn}
	db.users = &UserRepository{pool: pool}
	db.tasks = &TaskRepository{pool: pool}
	return db, nil
}

// Migrate applies pending goose migrations over a short-lived database/sql
// connection.
func (db *DB) Migrate(ctx context.Context) error {
	sqlDB, err := sql.Open("pgx", db.dsn)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	results, err := provider.Up(runCtx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// Close releases the pool.
func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

// Users returns the Postgres-backed user repository.
func (db *DB) Users() domain.UserRepository {
	return db.users
}

// Tasks returns the Postgres-backed task repository.
func (db *DB) Tasks() domain.TaskRepository {
	return db.tasks
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
