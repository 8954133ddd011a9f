// Package admin holds the per-screen controller state of the admin client.
//
// Each screen owns one Pager, one Form and one Viewer. None of them perform
// I/O: the caller issues requests and feeds the results back through
// Outcome values, so the same state machine drives the terminal screens,
// the one-shot commands and the tests.
//
// Form mode is an explicit tagged value:
//
//	form := admin.NewForm[model.CountryDraft]()
//	form.Edit(c.ID, c.Draft())   // ModeEditing(c.ID)
//	id, editing := form.Target() // 12, true
//	form.Cancel()                // back to ModeCreate, draft cleared
package admin
