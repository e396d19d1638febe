// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/lbds137/tzurot/internal/model"
	"github.com/lbds137/tzurot/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) FindByID(ctx context.Context, id string, filter model.AccessFilter) (*model.Personality, error) {
	return queryFindByID(ctx, s.db, id, filter)
}

func (s *PostgresStore) FindByNameOrSlug(ctx context.Context, name, slug string, filter model.AccessFilter) ([]*model.Personality, error) {
	return queryFindByNameOrSlug(ctx, s.db, name, slug, filter)
}

func (s *PostgresStore) FindAliasTarget(ctx context.Context, alias string) (string, error) {
	return queryFindAliasTarget(ctx, s.db, alias)
}

func (s *PostgresStore) GetGlobalConfig(ctx context.Context) (*model.PersonalityConfig, error) {
	return queryGetGlobalConfig(ctx, s.db)
}

func (s *PostgresStore) GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return queryGetUserByExternalID(ctx, s.db, externalID)
}

func (s *PostgresStore) ListPersonalities(ctx context.Context) ([]*model.Personality, error) {
	return queryListPersonalities(ctx, s.db)
}
