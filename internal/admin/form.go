package admin

import "fmt"

// ModeKind distinguishes creating a record from editing one
type ModeKind int

const (
	ModeCreate ModeKind = iota
	ModeEditing
)

// String returns the mode name
func (k ModeKind) String() string {
	switch k {
	case ModeCreate:
		return "create"
	case ModeEditing:
		return "editing"
	default:
		return fmt.Sprintf("ModeKind(%d)", k)
	}
}

// Mode is the form's submit target: either create, or update of TargetID
type Mode struct {
	Kind     ModeKind
	TargetID int64
}

// Creating is the create mode
func Creating() Mode {
	return Mode{Kind: ModeCreate}
}

// Editing is the update mode for record id
func Editing(id int64) Mode {
	return Mode{Kind: ModeEditing, TargetID: id}
}

// Form holds the draft of one screen and the mode its submit runs in.
// D is the entity's draft type; its zero value is the empty form.
type Form[D any] struct {
	Draft D
	mode  Mode
}

// NewForm returns an empty form in create mode
func NewForm[D any]() *Form[D] {
	return &Form[D]{mode: Creating()}
}

// Mode returns the current mode
func (f *Form[D]) Mode() Mode {
	return f.mode
}

// Editing reports whether submit will update an existing record
func (f *Form[D]) Editing() bool {
	return f.mode.Kind == ModeEditing
}

// Target returns the record being edited
func (f *Form[D]) Target() (int64, bool) {
	if f.mode.Kind != ModeEditing {
		return 0, false
	}
	return f.mode.TargetID, true
}

// Edit prefills the draft with a record's editable fields and switches to
// update mode for that record.
func (f *Form[D]) Edit(id int64, draft D) {
	f.Draft = draft
	f.mode = Editing(id)
}

// Cancel leaves update mode and clears the draft. No request is involved.
func (f *Form[D]) Cancel() {
	f.Reset()
}

// Reset clears the draft and returns to create mode
func (f *Form[D]) Reset() {
	var zero D
	f.Draft = zero
	f.mode = Creating()
}

// SubmitLabel is the submit action's label, e.g. "Add Country" or
// "Update Country".
func (f *Form[D]) SubmitLabel(noun string) string {
	if f.Editing() {
		return "Update " + noun
	}
	return "Add " + noun
}
