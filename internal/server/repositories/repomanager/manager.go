// Package repomanager wires the concrete repositories to one database
// handle with a single lifecycle: opened once at process start, migrated,
// and closed on shutdown.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkowalski/quoteshelf/internal/server/repositories/favorites"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/posts"
	"github.com/dkowalski/quoteshelf/internal/server/repositories/users"
)

// RepositoryManager exposes the repositories plus the shared connection for
// code that needs transactions (dbx.WithTx).
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Posts() posts.Repository
	Favorites() favorites.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
