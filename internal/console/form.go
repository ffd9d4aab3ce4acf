package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/aussiebroadwan/sectors/pkg/sectorsdk"
)

type formMode int

const (
	formHidden formMode = iota
	formCreating
	formEditing
)

func (m formMode) String() string {
	switch m {
	case formCreating:
		return "creating"
	case formEditing:
		return "editing"
	default:
		return "hidden"
	}
}

// sectorForm is the add/edit form. id is nil unless the form edits an
// existing sector. session changes every time the form is reset, so a save
// result can be matched to the form that sent it.
type sectorForm struct {
	mode    formMode
	title   string
	id      *int64
	input   textinput.Model
	session uint64
	pending bool
}

func newSectorForm() sectorForm {
	ti := textinput.New()
	ti.Placeholder = "Sector name"
	ti.Prompt = "Name: "
	ti.CharLimit = 100
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	return sectorForm{title: TitleCreate, input: ti}
}

func (f *sectorForm) visible() bool { return f.mode != formHidden }

// reset hides the form and clears it back to an empty create form.
func (f *sectorForm) reset() {
	f.mode = formHidden
	f.title = TitleCreate
	f.id = nil
	f.session++
	f.pending = false
	f.input.Reset()
	f.input.Blur()
}

func (f *sectorForm) openCreate() {
	f.reset()
	f.mode = formCreating
	f.input.Focus()
}

func (f *sectorForm) openEdit(s sectorsdk.Sector) {
	f.reset()
	id := s.ID
	f.mode = formEditing
	f.title = TitleEdit
	f.id = &id
	f.input.SetValue(s.Name)
	f.input.Focus()
}

// request returns what a submit would send. ok is false when the trimmed
// name is empty or a save from this form is still in flight, in which case
// nothing is sent.
func (f *sectorForm) request() (req sectorsdk.SectorRequest, ok bool) {
	if f.pending {
		return sectorsdk.SectorRequest{}, false
	}
	name := strings.TrimSpace(f.input.Value())
	if name == "" {
		return sectorsdk.SectorRequest{}, false
	}
	return sectorsdk.SectorRequest{ID: f.id, Name: name}, true
}
