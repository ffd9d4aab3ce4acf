package console

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
)

const actionsCell = "e edit · d delete"

// Model is the sector console.
type Model struct {
	ctx    context.Context
	api    SectorAPI
	logger *slog.Logger
	styles Styles

	table      table.Model
	sectors    []sectorsdk.Sector // rows currently shown, in table order
	loadFailed bool

	form    sectorForm
	confirm confirmDialog
	alerts  []string

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithContext sets the context network calls run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New returns a console talking to api. Init loads the list.
func New(api SectorAPI, opts ...Option) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 40},
			{Title: "Actions", Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := Model{
		ctx:    context.Background(),
		api:    api,
		logger: slogx.Discard(),
		styles: DefaultStyles(),
		table:  t,
		form:   newSectorForm(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return loadSectors(m.ctx, m.api)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-8, 3))
		return m, nil

	case sectorsLoadedMsg:
		m.applyList(msg)
		return m, nil

	case sectorFetchedMsg:
		return m.applyFetched(msg), nil

	case sectorSavedMsg:
		return m.applySaved(msg)

	case sectorDeletedMsg:
		return m.applyDeleted(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) applyList(msg sectorsLoadedMsg) {
	// Clear first so a failed reload never leaves stale rows behind.
	m.sectors = nil
	m.table.SetRows(nil)
	m.loadFailed = false

	if msg.err != nil {
		m.logger.Error("failed to load sectors", "error", msg.err)
		m.loadFailed = true
		m.table.SetRows([]table.Row{{MsgLoadFailed, ""}})
		m.table.SetCursor(0)
		return
	}

	m.sectors = msg.sectors
	rows := make([]table.Row, len(msg.sectors))
	for i, s := range msg.sectors {
		rows[i] = table.Row{s.Name, actionsCell}
	}
	m.table.SetRows(rows)

	switch c := m.table.Cursor(); {
	case c < 0:
		m.table.SetCursor(0)
	case c >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) applyFetched(msg sectorFetchedMsg) Model {
	if msg.err != nil || msg.sector == nil {
		m.logger.Error("failed to fetch sector", "sector_id", msg.id, "error", msg.err)
		m.pushAlert(MsgFetchFailed)
		return m
	}

	// Creating and editing never switch directly into each other; a fetch
	// that lands while the form is open is dropped.
	if m.form.visible() {
		m.logger.Debug("dropping fetched sector, form already open",
			"sector_id", msg.id, "mode", m.form.mode.String())
		return m
	}

	m.form.openEdit(*msg.sector)
	return m
}

func (m Model) applySaved(msg sectorSavedMsg) (tea.Model, tea.Cmd) {
	// The form that sent this was cancelled or reopened since. Leave the
	// current form alone; a save that went through still shows up in the list.
	if msg.session != m.form.session {
		m.logger.Debug("dropping save result for a closed form",
			"name", msg.req.Name, "error", msg.err)
		if msg.err != nil {
			return m, nil
		}
		return m, loadSectors(m.ctx, m.api)
	}

	m.form.pending = false
	if msg.err != nil {
		m.logger.Error("failed to save sector", "name", msg.req.Name, "error", msg.err)
		m.pushAlert(MsgSaveFailed)
		return m, nil
	}

	m.form.reset()
	return m, loadSectors(m.ctx, m.api)
}

func (m Model) applyDeleted(msg sectorDeletedMsg) (tea.Model, tea.Cmd) {
	m.confirm.closeFor(msg.id)

	if msg.err != nil {
		m.logger.Error("failed to delete sector", "sector_id", msg.id, "error", msg.err)
		m.pushAlert(MsgDeleteFailed)
		return m, nil
	}
	return m, loadSectors(m.ctx, m.api)
}

func (m *Model) pushAlert(text string) {
	m.alerts = append(m.alerts, text)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case len(m.alerts) > 0:
		m.alerts = m.alerts[1:]
		return m, nil
	case m.confirm.visible:
		return m.handleConfirmKey(msg)
	case m.form.visible():
		return m.handleFormKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		m.form.openCreate()
		return m, nil
	case "r":
		return m, loadSectors(m.ctx, m.api)
	case "e", "enter":
		if s, ok := m.selected(); ok {
			return m, fetchSector(m.ctx, m.api, s.ID)
		}
		return m, nil
	case "d", "delete":
		if s, ok := m.selected(); ok {
			m.confirm.open(s.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		req, ok := m.form.request()
		if !ok {
			return m, nil
		}
		m.form.pending = true
		return m, saveSector(m.ctx, m.api, m.form.session, req)
	case "esc", "ctrl+o":
		m.form.reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.form.input, cmd = m.form.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if id, ok := m.confirm.confirm(); ok {
			return m, deleteSector(m.ctx, m.api, id)
		}
	case "n", "esc":
		m.confirm.close()
	}
	return m, nil
}

// selected resolves the sector under the table cursor. The error row has no
// sector behind it.
func (m Model) selected() (sectorsdk.Sector, bool) {
	if m.loadFailed {
		return sectorsdk.Sector{}, false
	}
	c := m.table.Cursor()
	if c < 0 || c >= len(m.sectors) {
		return sectorsdk.Sector{}, false
	}
	return m.sectors[c], true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Sectors"))
	b.WriteString("\n")

	list := m.listView()
	overlay := len(m.alerts) > 0 || m.confirm.visible || m.form.visible()
	if overlay {
		list = m.styles.Dimmed.Render(list)
	}
	b.WriteString(list)
	b.WriteString("\n")

	switch {
	case len(m.alerts) > 0:
		b.WriteString(m.alertView())
	case m.confirm.visible:
		b.WriteString(m.confirmView())
	case m.form.visible():
		b.WriteString(m.formView())
	default:
		b.WriteString(m.styles.Help.Render("a add · e/enter edit · d delete · r reload · q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) listView() string {
	if m.loadFailed {
		return m.styles.ErrorRow.Render(m.table.View())
	}
	if len(m.sectors) == 0 {
		return m.styles.Help.Render("No sectors yet. Press a to add one.")
	}
	return m.table.View()
}

func (m Model) formView() string {
	help := m.styles.Help.Render("enter save · esc cancel · ctrl+o close")
	if m.form.pending {
		help = m.styles.Help.Render("saving...")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.BoxTitle.Render(m.form.title),
		m.form.input.View(),
		"",
		help,
	)
	return m.styles.Box.Render(body)
}

func (m Model) confirmView() string {
	status := m.styles.Help.Render("y delete · n cancel")
	if m.confirm.pending {
		status = m.styles.Help.Render("deleting...")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Danger.Render(MsgConfirm),
		"",
		status,
	)
	return m.styles.Alert.Render(body)
}

func (m Model) alertView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Danger.Render(m.alerts[0]),
		"",
		m.styles.Help.Render("press any key"),
	)
	return m.styles.Alert.Render(body)
}
