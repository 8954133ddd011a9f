package model

import (
	"fmt"
	"strings"
)

// FormatDetailed returns the multi-line read-out used by the detail views.
func (c Country) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Country Details ===\n")
	b.WriteString(fmt.Sprintf("ID:   %d\n", c.ID))
	b.WriteString(fmt.Sprintf("Name: %s\n", c.Name))

	return b.String()
}

// FormatCompact returns a single line.
func (c Country) FormatCompact() string {
	return fmt.Sprintf("%d\t%s", c.ID, c.Name)
}

// FormatDetailed returns the multi-line read-out used by the detail views.
func (s State) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== State Details ===\n")
	b.WriteString(fmt.Sprintf("ID:      %d\n", s.ID))
	b.WriteString(fmt.Sprintf("Name:    %s\n", s.Name))
	b.WriteString(fmt.Sprintf("Country: %s\n", s.CountryName()))

	return b.String()
}

// FormatCompact returns a single line.
func (s State) FormatCompact() string {
	return fmt.Sprintf("%d\t%s\t%s", s.ID, s.Name, s.CountryName())
}
