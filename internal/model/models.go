package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// NotAvailable is shown wherever a State has no embedded Country.
const NotAvailable = "N/A"

// Country is a country as returned by the backend.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Draft returns the editable fields of the country.
func (c Country) Draft() CountryDraft {
	return CountryDraft{Name: c.Name}
}

// String returns "Name (#ID)" for selectors and log lines.
func (c Country) String() string {
	return fmt.Sprintf("%s (#%d)", c.Name, c.ID)
}

// State is a state as returned by the backend.
//
// CountryID is the write-side foreign key. The backend usually leaves it out
// of read responses and embeds Country instead.
type State struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	CountryID int64    `json:"countryId,omitempty"`
	Country   *Country `json:"country,omitempty"`
}

// CountryName returns the embedded country's name, or NotAvailable.
func (s State) CountryName() string {
	if s.Country == nil {
		return NotAvailable
	}
	return s.Country.Name
}

// ParentID returns the country this state belongs to. The explicit
// CountryID wins; the embedded country's ID is the fallback.
func (s State) ParentID() int64 {
	if s.CountryID != 0 {
		return s.CountryID
	}
	if s.Country != nil {
		return s.Country.ID
	}
	return 0
}

// Draft returns the editable fields of the state.
func (s State) Draft() StateDraft {
	return StateDraft{Name: s.Name, CountryID: s.ParentID()}
}

// CountryDraft is the request body for creating or updating a country.
type CountryDraft struct {
	Name string `json:"name"`
}

// StateDraft is the request body for creating or updating a state.
type StateDraft struct {
	Name      string `json:"name"`
	CountryID int64  `json:"countryId"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Content    []T `json:"content"`
	TotalPages int `json:"totalPages"`
}

// UnmarshalJSON decodes a page, treating a missing or null content array as
// empty and a missing totalPages as zero.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Content    []T `json:"content"`
		TotalPages int `json:"totalPages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Content == nil {
		raw.Content = []T{}
	}
	p.Content = raw.Content
	p.TotalPages = raw.TotalPages
	return nil
}

// Len returns the number of records on the page.
func (p *Page[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Content)
}

// Change actions carried by ChangeEvent
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent is one entry of the development backend's change feed.
type ChangeEvent struct {
	Entity string    `json:"entity"` // "country" or "state"
	Action string    `json:"action"`
	ID     int64     `json:"id"`
	At     time.Time `json:"at"`
}

// String returns e.g. "state 12 created".
func (e ChangeEvent) String() string {
	return fmt.Sprintf("%s %d %s", e.Entity, e.ID, e.Action)
}
