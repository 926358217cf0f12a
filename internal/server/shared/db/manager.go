// Package db wires repository implementations to their backing store and
// owns the shared database handle. The handle is created once at startup and
// injected into services; there is no other process-wide state.
package db

import (
	"context"
	"database/sql"

	"github.com/sitenexus/sitenexus/internal/server/sites"
	"github.com/sitenexus/sitenexus/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Sites() sites.Repository
}
