// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/soulbloom/internal/dbx"
	"github.com/dmitrijs2005/soulbloom/internal/server/migrations"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/flowers"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/gardens"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Gardens returns a gardens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Gardens(db dbx.DBTX) gardens.Repository {
	return gardens.NewPostgresRepository(db)
}

// Flowers returns a flowers.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Flowers(db dbx.DBTX) flowers.Repository {
	return flowers.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
