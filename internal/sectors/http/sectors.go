package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/sectors/internal/sectors/domain"
	"github.com/aussiebroadwan/sectors/internal/sectors/service"
	"github.com/aussiebroadwan/sectors/pkg/httpx"
	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
)

// maxBodyBytes bounds create and update bodies.
const maxBodyBytes = 4 << 10

type SectorsHandler struct {
	SectorService *service.SectorService
}

func toSectorResponse(s domain.Sector) sectorsdk.Sector {
	created, updated := s.CreatedAt, s.UpdatedAt
	return sectorsdk.Sector{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

// HandleList lists every sector
//
//	@Summary		List sectors
//	@Description	Returns every sector ordered by name. The list is never paginated.
//	@Tags			Sectors
//	@Produce		json
//	@Success		200	{array}		sectorsdk.Sector		"All sectors"
//	@Failure		401	{object}	httpx.ErrorResponse		"Missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorResponse		"Token lacks sectors:read"
//	@Failure		429	{object}	httpx.ErrorResponse		"Rate limit exceeded"
//	@Failure		500	{object}	httpx.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/sectors [get].
func (h *SectorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sectors, err := h.SectorService.List(ctx)
	if err != nil {
		log.Error("failed to list sectors", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, sectorsdk.ErrorCodeServerError, "Failed to list sectors")
		return
	}

	response := make([]sectorsdk.Sector, len(sectors))
	for i, s := range sectors {
		response[i] = toSectorResponse(s)
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet fetches one sector
//
//	@Summary		Get a sector
//	@Tags			Sectors
//	@Produce		json
//	@Param			id	path		int					true	"Sector ID"
//	@Success		200	{object}	sectorsdk.Sector	"The sector"
//	@Failure		400	{object}	httpx.ErrorResponse	"Malformed id"
//	@Failure		404	{object}	httpx.ErrorResponse	"Sector not found"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/sectors/{id} [get].
func (h *SectorsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sector, err := h.SectorService.Get(ctx, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSectorResponse(sector))
}

// HandleCreate creates a sector
//
//	@Summary		Create a sector
//	@Description	The id in the body must be null or absent; the server assigns it. Names are trimmed and must be unique.
//	@Tags			Sectors
//	@Accept			json
//	@Produce		json
//	@Param			sector	body		sectorsdk.SectorRequest	true	"Sector to create"
//	@Success		201		{object}	sectorsdk.Sector		"Created sector"
//	@Failure		400		{object}	httpx.ErrorResponse		"Malformed body or invalid name"
//	@Failure		409		{object}	httpx.ErrorResponse		"Name already taken"
//	@Failure		500		{object}	httpx.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/sectors [post].
func (h *SectorsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := decodeSectorRequest(w, r)
	if !ok {
		return
	}
	if req.ID != nil {
		httpx.WriteError(w, http.StatusBadRequest, sectorsdk.ErrorCodeInvalidRequest,
			"id must be null when creating a sector")
		return
	}

	sector, err := h.SectorService.Create(ctx, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/sectors/"+strconv.FormatInt(sector.ID, 10))
	httpx.WriteJSON(w, http.StatusCreated, toSectorResponse(sector))
}

// HandleUpdate renames a sector
//
//	@Summary		Update a sector
//	@Description	Renames the sector. An id in the body, when present, must match the path.
//	@Tags			Sectors
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Sector ID"
//	@Param			sector	body		sectorsdk.SectorRequest	true	"New name"
//	@Success		200		{object}	sectorsdk.Sector		"Updated sector"
//	@Failure		400		{object}	httpx.ErrorResponse		"Malformed id, body or name"
//	@Failure		404		{object}	httpx.ErrorResponse		"Sector not found"
//	@Failure		409		{object}	httpx.ErrorResponse		"Name already taken"
//	@Failure		500		{object}	httpx.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/sectors/{id} [put].
func (h *SectorsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeSectorRequest(w, r)
	if !ok {
		return
	}
	if req.ID != nil && *req.ID != id {
		httpx.WriteError(w, http.StatusBadRequest, sectorsdk.ErrorCodeInvalidRequest,
			"id in body does not match the path")
		return
	}

	sector, err := h.SectorService.Update(ctx, id, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSectorResponse(sector))
}

// HandleDelete deletes a sector
//
//	@Summary		Delete a sector
//	@Tags			Sectors
//	@Param			id	path	int	true	"Sector ID"
//	@Success		204	"Deleted"
//	@Failure		400	{object}	httpx.ErrorResponse	"Malformed id"
//	@Failure		404	{object}	httpx.ErrorResponse	"Sector not found"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/sectors/{id} [delete].
func (h *SectorsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.SectorService.Delete(ctx, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, sectorsdk.ErrorCodeInvalidRequest,
			"sector id must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeSectorRequest(w http.ResponseWriter, r *http.Request) (sectorsdk.SectorRequest, bool) {
	var req sectorsdk.SectorRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		slogx.FromContext(r.Context()).Debug("invalid sector body", "error", err)
		httpx.WriteError(w, http.StatusBadRequest, sectorsdk.ErrorCodeInvalidRequest,
			"body must be a JSON object with id and name")
		return req, false
	}

	// Exactly one JSON value; anything after it besides whitespace is rejected.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		slogx.FromContext(r.Context()).Debug("trailing data after sector body", "error", err)
		httpx.WriteError(w, http.StatusBadRequest, sectorsdk.ErrorCodeInvalidRequest,
			"body must contain a single JSON object")
		return sectorsdk.SectorRequest{}, false
	}
	return req, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrSectorNotFound):
		httpx.WriteError(w, http.StatusNotFound, sectorsdk.ErrorCodeNotFound, err.Error())
	case errors.Is(err, service.ErrSectorNameTaken):
		httpx.WriteError(w, http.StatusConflict, sectorsdk.ErrorCodeConflict, err.Error())
	case errors.Is(err, service.ErrInvalidSectorName):
		httpx.WriteError(w, http.StatusBadRequest, sectorsdk.ErrorCodeInvalidRequest, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("sector operation failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, sectorsdk.ErrorCodeServerError, "internal server error")
	}
}
