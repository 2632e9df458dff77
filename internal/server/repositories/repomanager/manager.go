package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/soulbloom/internal/dbx"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/flowers"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/gardens"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code runs
// against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Gardens(db dbx.DBTX) gardens.Repository
	Flowers(db dbx.DBTX) flowers.Repository
}
