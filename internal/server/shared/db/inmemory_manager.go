package db

import (
	"context"
	"database/sql"

	"github.com/sitenexus/sitenexus/internal/server/sites"
	"github.com/sitenexus/sitenexus/internal/server/users"
)

// InMemoryRepositoryManager backs the repositories with maps. Used by tests.
type InMemoryRepositoryManager struct {
	users users.Repository
	sites sites.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) Sites() sites.Repository {
	return m.sites
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		sites: sites.NewInMemoryRepository(),
	}
}
