package renderer

import (
	"bytes"
	"io"
	"strings"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// RenderTables renders every table that has at least one row, one after the other.
func RenderTables(tables ...*Table) string {
	var b strings.Builder
	for _, t := range tables {
		ConditionalBlock(&b, func(w io.Writer) bool {
			if len(t.Rows) == 0 {
				return false
			}
			if b.Len() > 0 {
				io.WriteString(w, "\n")
			}
			io.WriteString(w, RenderTable(t))
			return true
		})
	}
	return b.String()
}
