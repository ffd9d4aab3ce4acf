package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
)

type sectorsLoadedMsg struct {
	sectors []sectorsdk.Sector
	err     error
}

type sectorFetchedMsg struct {
	id     int64
	sector *sectorsdk.Sector
	err    error
}

type sectorSavedMsg struct {
	session uint64
	req     sectorsdk.SectorRequest
	sector  *sectorsdk.Sector
	err     error
}

type sectorDeletedMsg struct {
	id  int64
	err error
}

func loadSectors(ctx context.Context, api SectorAPI) tea.Cmd {
	return func() tea.Msg {
		sectors, err := api.ListSectors(ctx)
		return sectorsLoadedMsg{sectors: sectors, err: err}
	}
}

func fetchSector(ctx context.Context, api SectorAPI, id int64) tea.Cmd {
	return func() tea.Msg {
		sector, err := api.GetSector(ctx, id)
		return sectorFetchedMsg{id: id, sector: sector, err: err}
	}
}

// saveSector sends req on behalf of the form session that submitted it.
func saveSector(ctx context.Context, api SectorAPI, session uint64, req sectorsdk.SectorRequest) tea.Cmd {
	return func() tea.Msg {
		sector, err := api.SaveSector(ctx, req)
		return sectorSavedMsg{session: session, req: req, sector: sector, err: err}
	}
}

func deleteSector(ctx context.Context, api SectorAPI, id int64) tea.Cmd {
	return func() tea.Msg {
		return sectorDeletedMsg{id: id, err: api.DeleteSector(ctx, id)}
	}
}
