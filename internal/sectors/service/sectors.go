package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/sectors/internal/sectors/domain"
	"github.com/aussiebroadwan/sectors/internal/sectors/store"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
)

var (
	ErrSectorNotFound    = errors.New("sector not found")
	ErrSectorNameTaken   = errors.New("sector name already taken")
	ErrInvalidSectorName = errors.New("sector name must be 1 to 100 characters")
)

type SectorService struct {
	Store store.Store
}

// NormalizeName trims surrounding whitespace and checks the length bounds.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxSectorNameLen {
		return "", ErrInvalidSectorName
	}
	return name, nil
}

// List returns every sector ordered by name.
func (s *SectorService) List(ctx context.Context) ([]domain.Sector, error) {
	return s.Store.Sectors().ListSectors(ctx)
}

// Get fetches a sector by id.
func (s *SectorService) Get(ctx context.Context, id int64) (domain.Sector, error) {
	sector, err := s.Store.Sectors().GetSectorByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Sector{}, ErrSectorNotFound
	}
	return sector, err
}

// Create adds a sector. Names are unique after trimming.
func (s *SectorService) Create(ctx context.Context, name string) (domain.Sector, error) {
	log := slogx.FromContext(ctx)

	name, err := NormalizeName(name)
	if err != nil {
		return domain.Sector{}, err
	}

	var created domain.Sector
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Sectors().GetSectorByName(ctx, name); err == nil {
			return ErrSectorNameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		created, err = tx.Sectors().CreateSector(ctx, name)
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrSectorNameTaken
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrSectorNameTaken) {
			log.Warn("sector name already taken", slog.String("name", name))
		}
		return domain.Sector{}, err
	}

	log.Info("sector created",
		slog.Int64("sector_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

// Update renames a sector. Renaming a sector to its current name succeeds.
func (s *SectorService) Update(ctx context.Context, id int64, name string) (domain.Sector, error) {
	log := slogx.FromContext(ctx)

	name, err := NormalizeName(name)
	if err != nil {
		return domain.Sector{}, err
	}

	var updated domain.Sector
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Sectors().GetSectorByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSectorNotFound
			}
			return err
		}

		existing, err := tx.Sectors().GetSectorByName(ctx, name)
		switch {
		case err == nil && existing.ID != id:
			return ErrSectorNameTaken
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}

		updated, err = tx.Sectors().UpdateSectorName(ctx, id, name)
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return ErrSectorNameTaken
		case errors.Is(err, store.ErrNotFound):
			return ErrSectorNotFound
		}
		return err
	})
	if err != nil {
		return domain.Sector{}, err
	}

	log.Info("sector renamed",
		slog.Int64("sector_id", updated.ID),
		slog.String("name", updated.Name),
	)
	return updated, nil
}

// Delete removes a sector.
func (s *SectorService) Delete(ctx context.Context, id int64) error {
	if err := s.Store.Sectors().DeleteSector(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSectorNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("sector deleted", slog.Int64("sector_id", id))
	return nil
}
