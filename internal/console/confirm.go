package console

// confirmDialog asks before deleting. It is opened for one sector id at a
// time and every action on it names the id it applies to.
type confirmDialog struct {
	visible bool
	id      int64
	pending bool
}

func (d *confirmDialog) open(id int64) {
	*d = confirmDialog{visible: true, id: id}
}

func (d *confirmDialog) close() {
	*d = confirmDialog{}
}

// confirm marks the delete as in flight and returns the target id. A second
// confirm while the first is in flight returns ok false.
func (d *confirmDialog) confirm() (id int64, ok bool) {
	if !d.visible || d.pending {
		return 0, false
	}
	d.pending = true
	return d.id, true
}

// closeFor closes the dialog if it is still open for id.
func (d *confirmDialog) closeFor(id int64) {
	if d.visible && d.id == id {
		d.close()
	}
}
