package repomanager

import (
	"context"
	"database/sql"

	"github.com/tanvirrahman/matrimony/internal/dbx"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/accounts"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/counters"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/favorites"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/profiles"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/stories"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/unlocks"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Counters(db dbx.DBTX) counters.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Unlocks(db dbx.DBTX) unlocks.Repository
	Favorites(db dbx.DBTX) favorites.Repository
	Stories(db dbx.DBTX) stories.Repository
}
