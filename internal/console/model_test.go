package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
)

var errBoom = errors.New("boom")

// fakeAPI is an in-memory SectorAPI that records every call.
type fakeAPI struct {
	sectors []sectorsdk.Sector
	nextID  int64

	listErr   error
	getErr    error
	saveErr   error
	deleteErr error

	calls []string
	saved []sectorsdk.SectorRequest
}

func newFakeAPI(sectors ...sectorsdk.Sector) *fakeAPI {
	return &fakeAPI{sectors: sectors, nextID: 100}
}

func (f *fakeAPI) ListSectors(context.Context) ([]sectorsdk.Sector, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]sectorsdk.Sector(nil), f.sectors...), nil
}

func (f *fakeAPI) GetSector(_ context.Context, id int64) (*sectorsdk.Sector, error) {
	f.calls = append(f.calls, fmt.Sprintf("get %d", id))
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, s := range f.sectors {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, &sectorsdk.APIError{StatusCode: 404, Code: sectorsdk.ErrorCodeNotFound}
}

func (f *fakeAPI) SaveSector(_ context.Context, req sectorsdk.SectorRequest) (*sectorsdk.Sector, error) {
	f.calls = append(f.calls, "save")
	f.saved = append(f.saved, req)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if req.ID == nil {
		f.nextID++
		s := sectorsdk.Sector{ID: f.nextID, Name: req.Name}
		f.sectors = append(f.sectors, s)
		return &s, nil
	}
	for i := range f.sectors {
		if f.sectors[i].ID == *req.ID {
			f.sectors[i].Name = req.Name
			return &f.sectors[i], nil
		}
	}
	return nil, &sectorsdk.APIError{StatusCode: 404, Code: sectorsdk.ErrorCodeNotFound}
}

func (f *fakeAPI) DeleteSector(_ context.Context, id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("delete %d", id))
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.sectors {
		if f.sectors[i].ID == id {
			f.sectors = append(f.sectors[:i], f.sectors[i+1:]...)
			return nil
		}
	}
	return &sectorsdk.APIError{StatusCode: 404, Code: sectorsdk.ErrorCodeNotFound}
}

func (f *fakeAPI) resetCalls() { f.calls, f.saved = nil, nil }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update must return a console.Model")
	return model, cmd
}

// run executes cmd and feeds what it produces back into the model until
// nothing is left to run.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	for cmd != nil {
		switch msg := cmd().(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				m = run(t, m, c)
			}
			return m
		case tea.QuitMsg:
			return m
		default:
			m, cmd = update(t, m, msg)
		}
	}
	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()

	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = update(t, m, keyMsg(k))
		m = run(t, m, cmd)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return run(t, m, cmd)
}

func start(t *testing.T, api SectorAPI) Model {
	t.Helper()

	m := New(api)
	return run(t, m, m.Init())
}

func selectID(t *testing.T, m Model, id int64) Model {
	t.Helper()

	for range len(m.sectors) {
		if s, ok := m.selected(); ok && s.ID == id {
			return m
		}
		m = press(t, m, "down")
	}
	s, ok := m.selected()
	require.True(t, ok)
	require.Equal(t, id, s.ID, "sector %d not in table", id)
	return m
}

func rowNames(m Model) []string {
	var names []string
	for _, r := range m.table.Rows() {
		names = append(names, r[0])
	}
	return names
}

func TestInitRendersOneRowPerSector(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(
		sectorsdk.Sector{ID: 1, Name: "Agriculture"},
		sectorsdk.Sector{ID: 5, Name: "Energy"},
		sectorsdk.Sector{ID: 7, Name: "Retail"},
	)
	m := start(t, api)

	require.Equal(t, []string{"list"}, api.calls)
	require.Len(t, m.table.Rows(), 3)
	require.Equal(t, []string{"Agriculture", "Energy", "Retail"}, rowNames(m))
	for _, r := range m.table.Rows() {
		require.Equal(t, actionsCell, r[1])
	}
	require.False(t, m.loadFailed)

	view := m.View()
	for _, name := range rowNames(m) {
		require.Contains(t, view, name)
	}
}

func TestListFailureShowsSingleErrorRow(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(
		sectorsdk.Sector{ID: 1, Name: "Agriculture"},
		sectorsdk.Sector{ID: 5, Name: "Energy"},
	)
	m := start(t, api)
	require.Len(t, m.table.Rows(), 2)

	api.listErr = errBoom
	m = press(t, m, "r")

	require.Equal(t, []table.Row{{MsgLoadFailed, ""}}, m.table.Rows())
	require.Empty(t, m.sectors)
	require.True(t, m.loadFailed)
	require.Contains(t, m.View(), MsgLoadFailed)
	require.NotContains(t, m.View(), "Energy")

	// The error row carries no sector.
	api.resetCalls()
	m = press(t, m, "e", "d")
	require.Empty(t, api.calls)
	require.False(t, m.confirm.visible)

	// A later successful load replaces the error row.
	api.listErr = nil
	m = press(t, m, "r")
	require.Equal(t, []string{"Agriculture", "Energy"}, rowNames(m))
	require.False(t, m.loadFailed)
}

func TestCreateSector(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	m := start(t, api)

	m = press(t, m, "a")
	require.Equal(t, formCreating, m.form.mode)
	require.Equal(t, TitleCreate, m.form.title)
	require.Nil(t, m.form.id)
	require.Contains(t, m.View(), TitleCreate)

	api.resetCalls()
	m = typeText(t, m, "  Finance ")
	m = press(t, m, "enter")

	require.Equal(t, []string{"save", "list"}, api.calls)
	require.Equal(t, []sectorsdk.SectorRequest{{ID: nil, Name: "Finance"}}, api.saved)
	require.Equal(t, formHidden, m.form.mode)
	require.Empty(t, m.form.input.Value())
	require.Equal(t, []string{"Finance"}, rowNames(m))
}

func TestBlankSubmitSendsNothing(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\t"} {
		api := newFakeAPI()
		m := start(t, api)
		api.resetCalls()

		m = press(t, m, "a")
		if input != "" {
			m = typeText(t, m, input)
		}
		m = press(t, m, "enter")

		require.Empty(t, api.calls, "input %q", input)
		require.Equal(t, formCreating, m.form.mode, "form stays open for %q", input)
	}
}

func TestEditSector(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(
		sectorsdk.Sector{ID: 2, Name: "Banking"},
		sectorsdk.Sector{ID: 5, Name: "Energy"},
	)
	m := start(t, api)
	m = selectID(t, m, 5)

	api.resetCalls()
	m = press(t, m, "e")

	require.Equal(t, []string{"get 5"}, api.calls)
	require.Equal(t, formEditing, m.form.mode)
	require.Equal(t, TitleEdit, m.form.title)
	require.NotNil(t, m.form.id)
	require.Equal(t, int64(5), *m.form.id)
	require.Equal(t, "Energy", m.form.input.Value())

	m = press(t, m, "ctrl+u")
	m = typeText(t, m, "Renewables")
	m = press(t, m, "enter")

	require.Len(t, api.saved, 1)
	require.NotNil(t, api.saved[0].ID)
	require.Equal(t, int64(5), *api.saved[0].ID)
	require.Equal(t, "Renewables", api.saved[0].Name)
	require.Equal(t, []string{"get 5", "save", "list"}, api.calls)
	require.Equal(t, formHidden, m.form.mode)
	require.Equal(t, []string{"Banking", "Renewables"}, rowNames(m))
}

func TestEditWithEnterKey(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(sectorsdk.Sector{ID: 3, Name: "Mining"})
	m := start(t, api)
	api.resetCalls()

	m = press(t, m, "enter")
	require.Equal(t, []string{"get 3"}, api.calls)
	require.Equal(t, formEditing, m.form.mode)
}

func TestEditFetchFailureAlerts(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(sectorsdk.Sector{ID: 5, Name: "Energy"})
	m := start(t, api)
	api.getErr = errBoom

	m = press(t, m, "e")
	require.Equal(t, []string{MsgFetchFailed}, m.alerts)
	require.Equal(t, formHidden, m.form.mode)
	require.Equal(t, []string{"Energy"}, rowNames(m))
	require.Contains(t, m.View(), MsgFetchFailed)

	// Any key dismisses the alert and does nothing else.
	api.resetCalls()
	m = press(t, m, "a")
	require.Empty(t, m.alerts)
	require.Equal(t, formHidden, m.form.mode)
	require.Empty(t, api.calls)
}

func TestSaveFailureKeepsFormOpen(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	m := start(t, api)
	api.saveErr = &sectorsdk.APIError{StatusCode: 409, Code: sectorsdk.ErrorCodeConflict}

	m = press(t, m, "a")
	m = typeText(t, m, "Finance")
	api.resetCalls()
	m = press(t, m, "enter")

	require.Equal(t, []string{"save"}, api.calls, "no reload after a failed save")
	require.Equal(t, []string{MsgSaveFailed}, m.alerts)

	m = press(t, m, "x")
	require.Empty(t, m.alerts)
	require.Equal(t, formCreating, m.form.mode)
	require.Equal(t, "Finance", m.form.input.Value(), "the dismissing key is not typed into the form")
}

func TestDeleteConfirmed(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(
		sectorsdk.Sector{ID: 3, Name: "Mining"},
		sectorsdk.Sector{ID: 7, Name: "Tourism"},
	)
	m := start(t, api)
	m = selectID(t, m, 7)
	api.resetCalls()

	m = press(t, m, "d")
	require.True(t, m.confirm.visible)
	require.Equal(t, int64(7), m.confirm.id)
	require.Contains(t, m.View(), MsgConfirm)
	require.Empty(t, api.calls, "opening the dialog sends nothing")

	m = press(t, m, "y")
	require.Equal(t, []string{"delete 7", "list"}, api.calls)
	require.False(t, m.confirm.visible)
	require.Equal(t, []string{"Mining"}, rowNames(m))
}

func TestDeleteCancelled(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"n", "esc"} {
		api := newFakeAPI(sectorsdk.Sector{ID: 7, Name: "Tourism"})
		m := start(t, api)
		api.resetCalls()

		m = press(t, m, "delete", key)
		require.Empty(t, api.calls, "cancel with %q sends nothing", key)
		require.False(t, m.confirm.visible)
		require.Equal(t, []string{"Tourism"}, rowNames(m))
	}
}

func TestDeleteFailureAlertsAndCloses(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(sectorsdk.Sector{ID: 7, Name: "Tourism"})
	m := start(t, api)
	api.deleteErr = errBoom
	api.resetCalls()

	m = press(t, m, "d", "enter")
	require.Equal(t, []string{"delete 7"}, api.calls)
	require.False(t, m.confirm.visible)
	require.Equal(t, []string{MsgDeleteFailed}, m.alerts)
}

func TestConfirmDialogIsScopedToItsID(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(
		sectorsdk.Sector{ID: 3, Name: "Mining"},
		sectorsdk.Sector{ID: 7, Name: "Tourism"},
	)
	m := start(t, api)
	m = selectID(t, m, 7)

	// The first delete is still in flight: its command has not run yet.
	m, cmd := update(t, m, keyMsg("d"))
	require.Nil(t, cmd)
	m, cmd = update(t, m, keyMsg("y"))
	require.NotNil(t, cmd)
	require.True(t, m.confirm.pending)

	// Confirming again while pending does not send a second delete.
	_, again := update(t, m, keyMsg("y"))
	require.Nil(t, again)

	// A result for another id leaves this dialog alone.
	m, _ = update(t, m, sectorDeletedMsg{id: 3})
	require.True(t, m.confirm.visible)

	m = run(t, m, cmd)
	require.False(t, m.confirm.visible)
	require.Equal(t, []string{"delete 7", "list"}, api.calls[1:])
}

func TestCancelResetsForm(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "ctrl+o"} {
		api := newFakeAPI(sectorsdk.Sector{ID: 5, Name: "Energy"})
		m := start(t, api)

		m = press(t, m, "e")
		require.Equal(t, formEditing, m.form.mode)

		m = press(t, m, key)
		require.Equal(t, formHidden, m.form.mode, key)
		require.Nil(t, m.form.id)
		require.Empty(t, m.form.input.Value())
		require.Equal(t, TitleCreate, m.form.title)

		// Reopening in create mode carries nothing over from the edit.
		m = press(t, m, "a")
		require.Equal(t, formCreating, m.form.mode)
		require.Nil(t, m.form.id)
		require.Empty(t, m.form.input.Value())
	}
}

func TestFetchDoesNotReplaceOpenForm(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(sectorsdk.Sector{ID: 5, Name: "Energy"})
	m := start(t, api)

	m = press(t, m, "a")
	m = typeText(t, m, "Draft")

	m, _ = update(t, m, sectorFetchedMsg{id: 5, sector: &sectorsdk.Sector{ID: 5, Name: "Energy"}})
	require.Equal(t, formCreating, m.form.mode)
	require.Nil(t, m.form.id)
	require.Equal(t, "Draft", m.form.input.Value())
}

func TestFormKeysAreTyped(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	m := start(t, api)
	api.resetCalls()

	// Table shortcuts are plain text while the form is open.
	m = press(t, m, "a", "d", "r", "q", "e")
	require.Equal(t, formCreating, m.form.mode)
	require.Equal(t, "drqe", m.form.input.Value())
	require.Empty(t, api.calls)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := start(t, newFakeAPI())

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	// ctrl+c quits from anywhere, even with the form open.
	m = press(t, m, "a")
	_, cmd = update(t, m, keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewStates(t *testing.T) {
	t.Parallel()

	m := start(t, newFakeAPI())
	require.Contains(t, m.View(), "No sectors yet")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Equal(t, 100, m.width)

	m = press(t, m, "a")
	view := m.View()
	require.Contains(t, view, TitleCreate)
	require.True(t, strings.Contains(view, "esc cancel"))
}

func TestLateSaveResultLeavesNewFormAlone(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	m := start(t, api)

	m = press(t, m, "a")
	m = typeText(t, m, "Finance")
	m, held := update(t, m, keyMsg("enter"))
	require.NotNil(t, held)

	// Cancel and start another sector before the first save answers.
	m = press(t, m, "esc", "a")
	m = typeText(t, m, "Energy")

	api.resetCalls()
	m = run(t, m, held)

	require.Equal(t, []string{"save", "list"}, api.calls, "the saved sector still shows up")
	require.Equal(t, []string{"Finance"}, rowNames(m))
	require.Equal(t, formCreating, m.form.mode)
	require.Equal(t, "Energy", m.form.input.Value())
	require.False(t, m.form.pending)
	require.Empty(t, m.alerts)
}

func TestLateSaveFailureDoesNotAlertNewForm(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	m := start(t, api)
	api.saveErr = errBoom

	m = press(t, m, "a")
	m = typeText(t, m, "Finance")
	m, held := update(t, m, keyMsg("enter"))
	require.NotNil(t, held)

	m = press(t, m, "esc")
	m = run(t, m, held)

	require.Empty(t, m.alerts)
	require.Equal(t, formHidden, m.form.mode)
}

func TestSecondSubmitWhileSavingSendsNothing(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	m := start(t, api)

	m = press(t, m, "a")
	m = typeText(t, m, "Finance")

	m, first := update(t, m, keyMsg("enter"))
	require.NotNil(t, first)
	require.True(t, m.form.pending)
	require.Contains(t, m.View(), "saving...")

	m, second := update(t, m, keyMsg("enter"))
	require.Nil(t, second)

	api.resetCalls()
	m = run(t, m, first)
	require.Equal(t, []string{"save", "list"}, api.calls)
	require.Len(t, api.saved, 1)
	require.Equal(t, formHidden, m.form.mode)
}

func TestSubmitAgainAfterFailedSave(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	m := start(t, api)
	api.saveErr = errBoom

	m = press(t, m, "a")
	m = typeText(t, m, "Finance")
	m = press(t, m, "enter")
	require.Equal(t, []string{MsgSaveFailed}, m.alerts)
	require.False(t, m.form.pending)

	api.saveErr = nil
	api.resetCalls()
	m = press(t, m, "x", "enter")
	require.Equal(t, []string{"save", "list"}, api.calls)
	require.Equal(t, formHidden, m.form.mode)
	require.Equal(t, []string{"Finance"}, rowNames(m))
}
