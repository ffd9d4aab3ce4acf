package postgres

import (
	"context"

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
	var s domain.Sector
	if err := row.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.Sector{}, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
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
	s, err := scanSector(r.q.QueryRowContext(ctx,
		`SELECT `+sectorColumns+` FROM sectors WHERE id = $1`, id))
	return s, mapError(err)
}

func (r *sectorsRepo) GetSectorByName(ctx context.Context, name string) (domain.Sector, error) {
	s, err := scanSector(r.q.QueryRowContext(ctx,
		`SELECT `+sectorColumns+` FROM sectors WHERE name = $1`, name))
	return s, mapError(err)
}

func (r *sectorsRepo) CreateSector(ctx context.Context, name string) (domain.Sector, error) {
	s, err := scanSector(r.q.QueryRowContext(ctx,
		`INSERT INTO sectors (name) VALUES ($1) RETURNING `+sectorColumns, name))
	return s, mapError(err)
}

func (r *sectorsRepo) UpdateSectorName(ctx context.Context, id int64, name string) (domain.Sector, error) {
	s, err := scanSector(r.q.QueryRowContext(ctx,
		`UPDATE sectors SET name = $1, updated_at = now() WHERE id = $2 RETURNING `+sectorColumns,
		name, id))
	return s, mapError(err)
}

func (r *sectorsRepo) DeleteSector(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sectors WHERE id = $1`, id)
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
