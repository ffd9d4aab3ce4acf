package console

import (
	"context"

	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
)

// SectorAPI is the part of the sector API the console needs.
// *sectorsdk.Client satisfies it.
type SectorAPI interface {
	ListSectors(ctx context.Context) ([]sectorsdk.Sector, error)
	GetSector(ctx context.Context, id int64) (*sectorsdk.Sector, error)
	SaveSector(ctx context.Context, req sectorsdk.SectorRequest) (*sectorsdk.Sector, error)
	DeleteSector(ctx context.Context, id int64) error
}

var _ SectorAPI = (*sectorsdk.Client)(nil)

// User facing texts.
const (
	TitleCreate = "Add sector"
	TitleEdit   = "Edit sector"

	MsgLoadFailed   = "Failed to load sectors."
	MsgSaveFailed   = "Failed to save sector."
	MsgFetchFailed  = "Sector not found or failed to load."
	MsgDeleteFailed = "Failed to delete sector."
	MsgConfirm      = "Delete this sector?"
)
