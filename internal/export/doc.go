// Package export renders the loaded page of a screen as a PDF document or
// an XLSX workbook.
//
// Only records already in memory are exported. Nothing here talks to the
// backend, so an export of page 2 contains exactly the rows of page 2.
//
// Output files have fixed names per entity and are overwritten on every
// export:
//
//	Countries.pdf   Countries.xlsx
//	state_list.pdf  States.xlsx
package export
