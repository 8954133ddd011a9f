package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRequired is wrapped by every missing-field error.
var ErrRequired = errors.New("required")

// FieldError reports a missing required field.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrRequired
}

// Validate checks that the country name is present.
func (d CountryDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &FieldError{Field: "name"}
	}
	return nil
}

// Validate checks that the state name and country are present.
func (d StateDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &FieldError{Field: "name"}
	}
	if d.CountryID == 0 {
		return &FieldError{Field: "countryId"}
	}
	return nil
}

// IsZero reports whether the draft is in its empty default state.
func (d CountryDraft) IsZero() bool {
	return d == CountryDraft{}
}

// IsZero reports whether the draft is in its empty default state.
func (d StateDraft) IsZero() bool {
	return d == StateDraft{}
}
