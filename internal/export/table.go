package export

import (
	"fmt"

	"github.com/muurk/geoadmin/internal/model"
)

// Format selects the output document type
type Format int

const (
	FormatPDF Format = iota
	FormatXLSX
)

// String returns the file extension of the format
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatXLSX:
		return "xlsx"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// ParseFormat accepts "pdf" or "xlsx"
func ParseFormat(s string) (Format, error) {
	switch s {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return 0, fmt.Errorf("unknown export format %q (expected pdf or xlsx)", s)
	}
}

// Table is one exported page.
//
// Headers label the PDF columns. Fields name the spreadsheet header row and
// default to Headers; the two differ for states ("State Name" vs "Name").
type Table struct {
	Title   string // PDF heading, empty for none
	Sheet   string // workbook sheet name
	Headers []string
	Fields  []string
	Rows    [][]any

	PDFFile  string
	XLSXFile string
}

// FieldNames returns the spreadsheet header row
func (t Table) FieldNames() []string {
	if len(t.Fields) > 0 {
		return t.Fields
	}
	return t.Headers
}

// Filename returns the fixed output name for format
func (t Table) Filename(format Format) string {
	if format == FormatXLSX {
		return t.XLSXFile
	}
	return t.PDFFile
}

// CountryTable builds the export of a page of countries
func CountryTable(countries []model.Country) Table {
	rows := make([][]any, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, []any{c.ID, c.Name})
	}
	return Table{
		Sheet:    "Countries",
		Headers:  []string{"ID", "Name"},
		Rows:     rows,
		PDFFile:  "Countries.pdf",
		XLSXFile: "Countries.xlsx",
	}
}

// StateTable builds the export of a page of states. The country column is
// the embedded country's name, or "N/A".
func StateTable(states []model.State) Table {
	rows := make([][]any, 0, len(states))
	for _, s := range states {
		rows = append(rows, []any{s.ID, s.Name, s.CountryName()})
	}
	return Table{
		Title:    "State List",
		Sheet:    "States",
		Headers:  []string{"ID", "State Name", "Country"},
		Fields:   []string{"ID", "Name", "Country"},
		Rows:     rows,
		PDFFile:  "state_list.pdf",
		XLSXFile: "States.xlsx",
	}
}
