package admin

import "fmt"

// DefaultPageSize is the page size of both screens
const DefaultPageSize = 5

// Pager tracks the zero-based page index of a list screen and the page count
// reported by the last fetch.
type Pager struct {
	Index      int
	Size       int
	TotalPages int
}

// NewPager returns a pager at page 0. A non-positive size selects
// DefaultPageSize.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{Size: size}
}

// CanPrev reports whether a previous page exists
func (p *Pager) CanPrev() bool {
	return p.Index > 0
}

// CanNext reports whether a next page exists. With zero pages there is none.
func (p *Pager) CanNext() bool {
	return p.Index < p.TotalPages-1
}

// Prev moves back one page and reports whether the index changed
func (p *Pager) Prev() bool {
	if !p.CanPrev() {
		return false
	}
	p.Index--
	return true
}

// Next moves forward one page and reports whether the index changed
func (p *Pager) Next() bool {
	if !p.CanNext() {
		return false
	}
	p.Index++
	return true
}

// SetTotalPages records the page count of the latest response. The index is
// left alone even when it now points past the end; the next fetch decides.
func (p *Pager) SetTotalPages(n int) {
	if n < 0 {
		n = 0
	}
	p.TotalPages = n
}

// Label renders the one-based page position, e.g. "Page 3 of 3"
func (p *Pager) Label() string {
	return fmt.Sprintf("Page %d of %d", p.Index+1, p.TotalPages)
}
