// Package db wires the PostgreSQL connection, applies migrations, and
// hands out the repositories that run on it.
package db

import (
	"github.com/ikratov/taskkeeper/internal/server/tasks"
	"github.com/ikratov/taskkeeper/internal/server/users"
)

// RepositoryManager owns the database handle and the repositories bound
// to it.
type RepositoryManager interface {
	Users() users.Repository
	Tasks() tasks.Repository
	Close() error
}
