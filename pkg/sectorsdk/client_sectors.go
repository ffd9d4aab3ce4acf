package sectorsdk

import (
	"context"
	"net/http"
	"strconv"
)

const sectorsPath = "/api/sectors"

func sectorPath(id int64) string {
	return sectorsPath + "/" + strconv.FormatInt(id, 10)
}

// ListSectors returns every sector.
func (c *Client) ListSectors(ctx context.Context) ([]Sector, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, sectorsPath, nil)
	if err != nil {
		return nil, err
	}

	sectors := []Sector{}
	if err := decodeJSON(resp, &sectors); err != nil {
		return nil, err
	}
	return sectors, nil
}

// GetSector fetches one sector. A missing sector is an *APIError for which
// IsNotFound is true.
func (c *Client) GetSector(ctx context.Context, id int64) (*Sector, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, sectorPath(id), nil)
	if err != nil {
		return nil, err
	}

	var sector Sector
	if err := decodeJSON(resp, &sector); err != nil {
		return nil, err
	}
	return &sector, nil
}

// CreateSector creates a sector. The request body carries an explicit null id.
func (c *Client) CreateSector(ctx context.Context, name string) (*Sector, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, sectorsPath, SectorRequest{Name: name})
	if err != nil {
		return nil, err
	}

	sector := Sector{Name: name}
	if err := decodeJSON(resp, &sector); err != nil {
		return nil, err
	}
	return &sector, nil
}

// UpdateSector renames the sector with the given id.
func (c *Client) UpdateSector(ctx context.Context, id int64, name string) (*Sector, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, sectorPath(id), SectorRequest{ID: &id, Name: name})
	if err != nil {
		return nil, err
	}

	sector := Sector{ID: id, Name: name}
	if err := decodeJSON(resp, &sector); err != nil {
		return nil, err
	}
	return &sector, nil
}

// SaveSector updates the sector when req.ID is set and creates one otherwise.
func (c *Client) SaveSector(ctx context.Context, req SectorRequest) (*Sector, error) {
	if req.ID != nil {
		return c.UpdateSector(ctx, *req.ID, req.Name)
	}
	return c.CreateSector(ctx, req.Name)
}

// DeleteSector deletes the sector with the given id.
func (c *Client) DeleteSector(ctx context.Context, id int64) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, sectorPath(id), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}
