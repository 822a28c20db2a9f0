package renderer

import (
	"fmt"

	"github.com/etnz/fuzzydate"
)

// Table is the printable view of a table: every cell is already formatted.
type Table struct {
	Title   string
	Summary string // a line printed between the title and the table
	Headers []string
	Rows    [][]string
	Notes   []string // printed as a list after the table
}

// NewTable formats t. Missing values are printed as an empty cell.
func NewTable(title string, t *fuzzydate.Table) *Table {
	res := &Table{
		Title:   title,
		Headers: t.Names(),
		Summary: fmt.Sprintf("%d rows, %d columns.", t.Len(), len(t.Names())),
	}
	for _, r := range t.Rows() {
		row := make([]string, len(res.Headers))
		for j, name := range res.Headers {
			row[j] = r[name].String()
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

// RenderTable renders the Table struct to a markdown string.
func RenderTable(t *Table) string {
	partials := map[string]string{
		"table_title": "table_title.md",
		"table_notes": "table_notes.md",
	}
	return renderTemplate("table", "table.md", partials, t)
}
