package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/sectors/internal/sectors/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off it as methods so a Tx-scoped Store
// hands out Tx-scoped repositories and nobody nests transactions by accident.
type Store interface {
	Sectors() Sectors

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Sectors interface {
	// ListSectors returns every sector ordered by name, then id.
	ListSectors(ctx context.Context) ([]domain.Sector, error)

	GetSectorByID(ctx context.Context, id int64) (domain.Sector, error)

	// GetSectorByName matches the stored (already trimmed) name exactly.
	GetSectorByName(ctx context.Context, name string) (domain.Sector, error)

	// CreateSector inserts a row; the database assigns the id.
	// Returns ErrAlreadyExists on a name collision.
	CreateSector(ctx context.Context, name string) (domain.Sector, error)

	// UpdateSectorName renames a sector and bumps updated_at.
	// Returns ErrNotFound or ErrAlreadyExists.
	UpdateSectorName(ctx context.Context, id int64, name string) (domain.Sector, error)

	// DeleteSector returns ErrNotFound when nothing was deleted.
	DeleteSector(ctx context.Context, id int64) error

	CountSectors(ctx context.Context) (int64, error)
}
