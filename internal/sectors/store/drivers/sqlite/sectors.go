package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/sectors/internal/sectors/domain"
	"github.com/aussiebroadwan/sectors/internal/sectors/store"
)

const sectorColumns = `id, name, created_at, updated_at`

type sectorsRepo struct {
	q querier
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSector(row rowScanner) (domain.Sector, error) {
	var (
		s                domain.Sector
		created, updated timestamp
	)
	if err := row.Scan(&s.ID, &s.Name, &created, &updated); err != nil {
		return domain.Sector{}, err
	}
	s.CreatedAt = created.Time
	s.UpdatedAt = updated.Time
	return s, nil
}

func (r *sectorsRepo) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+sectorColumns+` FROM sectors ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sectors := []domain.Sector{}
	for rows.Next() {
		s, err := scanSector(rows)
		if err != nil {
			return nil, err
		}
		sectors = append(sectors, s)
	}
	return sectors, rows.Err()
}

func (r *sectorsRepo) GetSectorByID(ctx context.Context, id int64) (domain.Sector, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+sectorColumns+` FROM sectors WHERE id = ?`, id)
	s, err := scanSector(row)
	if err != nil {
		return domain.Sector{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sectorsRepo) GetSectorByName(ctx context.Context, name string) (domain.Sector, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+sectorColumns+` FROM sectors WHERE name = ?`, name)
	s, err := scanSector(row)
	if err != nil {
		return domain.Sector{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sectorsRepo) CreateSector(ctx context.Context, name string) (domain.Sector, error) {
	now := time.Now().UTC()
	row := r.q.QueryRowContext(ctx,
		`INSERT INTO sectors (name, created_at, updated_at) VALUES (?, ?, ?) RETURNING `+sectorColumns,
		name, now, now,
	)
	s, err := scanSector(row)
	if err != nil {
		return domain.Sector{}, mapConstraint(err)
	}
	return s, nil
}

func (r *sectorsRepo) UpdateSectorName(ctx context.Context, id int64, name string) (domain.Sector, error) {
	row := r.q.QueryRowContext(ctx,
		`UPDATE sectors SET name = ?, updated_at = ? WHERE id = ? RETURNING `+sectorColumns,
		name, time.Now().UTC(), id,
	)
	s, err := scanSector(row)
	if err != nil {
		return domain.Sector{}, mapNotFound(mapConstraint(err))
	}
	return s, nil
}

func (r *sectorsRepo) DeleteSector(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sectors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *sectorsRepo) CountSectors(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sectors`).Scan(&n)
	return n, err
}
