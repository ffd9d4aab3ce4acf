package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/sectors/internal/sectors/store"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newMemoryStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestSectorsCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemoryStore(t).Sectors()

	created, err := repo.CreateSector(ctx, "Finance")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	byID, err := repo.GetSectorByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, byID.Name)
	require.True(t, created.CreatedAt.Equal(byID.CreatedAt))

	byName, err := repo.GetSectorByName(ctx, "Finance")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	renamed, err := repo.UpdateSectorName(ctx, created.ID, "Banking")
	require.NoError(t, err)
	require.Equal(t, "Banking", renamed.Name)
	require.False(t, renamed.UpdatedAt.Before(created.UpdatedAt))

	n, err := repo.CountSectors(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, repo.DeleteSector(ctx, created.ID))
	require.ErrorIs(t, repo.DeleteSector(ctx, created.ID), store.ErrNotFound)

	_, err = repo.GetSectorByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSectorsConstraints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemoryStore(t).Sectors()

	a, err := repo.CreateSector(ctx, "Finance")
	require.NoError(t, err)
	b, err := repo.CreateSector(ctx, "Retail")
	require.NoError(t, err)

	_, err = repo.CreateSector(ctx, "Finance")
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = repo.UpdateSectorName(ctx, b.ID, a.Name)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = repo.UpdateSectorName(ctx, 4242, "Mining")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = repo.CreateSector(ctx, "")
	require.Error(t, err, "empty names violate the check constraint")
}

func TestListSectorsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemoryStore(t).Sectors()

	empty, err := repo.ListSectors(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	for _, name := range []string{"Retail", "Agriculture", "Energy"} {
		_, err := repo.CreateSector(ctx, name)
		require.NoError(t, err)
	}

	sectors, err := repo.ListSectors(ctx)
	require.NoError(t, err)
	require.Len(t, sectors, 3)
	require.Equal(t, "Agriculture", sectors[0].Name)
	require.Equal(t, "Energy", sectors[1].Name)
	require.Equal(t, "Retail", sectors[2].Name)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newMemoryStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Sectors().CreateSector(ctx, "Transient")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Sectors().GetSectorByName(ctx, "Transient")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Sectors().CreateSector(ctx, "Durable")
		return err
	}))

	_, err = s.Sectors().GetSectorByName(ctx, "Durable")
	require.NoError(t, err)
}

func TestFileDSN(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sectors.db")
	s, err := NewStore(FileDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	ctx := context.Background()
	_, err = s.Sectors().CreateSector(ctx, "Finance")
	require.NoError(t, err)

	// A second handle on the same file sees the committed row.
	other, err := NewStore(FileDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })

	n, err := other.Sectors().CountSectors(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
