package admin

// Viewer holds at most one record shown in the detail overlay
type Viewer[T any] struct {
	item *T
}

// Show opens the overlay for item, replacing any record already shown
func (v *Viewer[T]) Show(item T) {
	v.item = &item
}

// Close dismisses the overlay
func (v *Viewer[T]) Close() {
	v.item = nil
}

// Open reports whether a record is being viewed
func (v *Viewer[T]) Open() bool {
	return v.item != nil
}

// Current returns the viewed record
func (v *Viewer[T]) Current() (T, bool) {
	if v.item == nil {
		var zero T
		return zero, false
	}
	return *v.item, true
}
