package admin

// Action is a request a screen issues
type Action int

const (
	ActionFetch Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionLookup
)

// String returns the action name used in logs
func (a Action) String() string {
	switch a {
	case ActionFetch:
		return "fetch"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// Outcome describes what a completed request does to the screen. A failed
// request changes nothing: the list stays as it was and the form keeps its
// draft.
type Outcome struct {
	Action    Action
	Err       error
	Refresh   bool // re-fetch the current page
	ResetForm bool // clear the draft and return to create mode
}

// OK reports whether the request succeeded
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Settle computes the outcome of a finished request
func Settle(action Action, err error) Outcome {
	o := Outcome{Action: action, Err: err}
	if err != nil {
		return o
	}
	switch action {
	case ActionCreate, ActionUpdate:
		o.Refresh = true
		o.ResetForm = true
	case ActionDelete:
		o.Refresh = true
	}
	return o
}

// Apply carries out the outcome on a form and reports whether the caller
// should re-fetch the current page.
func Apply[D any](o Outcome, form *Form[D]) bool {
	if o.ResetForm {
		form.Reset()
	}
	return o.Refresh
}
