package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/fuzzydate"
	"github.com/etnz/fuzzydate/date"
	"github.com/etnz/fuzzydate/finance"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// tableShape parses md and returns the number of header cells and body rows of its first table.
func tableShape(t *testing.T, md string) (headers, rows int) {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	found := false
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		tbl, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		found = true
		for c := tbl.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *east.TableHeader:
				headers = c.ChildCount()
			case *east.TableRow:
				rows++
			}
		}
		return ast.WalkSkipChildren, nil
	})
	if !found {
		t.Fatalf("no table in:\n%s", md)
	}
	return headers, rows
}

func TestRenderTable(t *testing.T) {
	tab := fuzzydate.MustTable(
		fuzzydate.Col("id", fuzzydate.Str("A|B"), fuzzydate.Str("C")),
		fuzzydate.Col("date", fuzzydate.On(date.New(2025, 1, 10)), fuzzydate.Null()),
		fuzzydate.Col("beta", fuzzydate.Num(1.2), fuzzydate.Null()),
	)
	view := NewTable("Merged", tab)
	view.Notes = []string{"tolerance: 2w"}
	md := RenderTable(view)

	headers, rows := tableShape(t, md)
	if headers != 3 || rows != 2 {
		t.Errorf("RenderTable() has %d headers and %d rows want 3 and 2:\n%s", headers, rows, md)
	}
	for _, want := range []string{"# Merged", "2 rows, 3 columns.", `A\|B`, "2025-01-10", "- tolerance: 2w"} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderTable() = %q want it to contain %q", md, want)
		}
	}
}

func TestRenderTableWithoutColumns(t *testing.T) {
	md := RenderTable(NewTable("", fuzzydate.MustTable()))
	if !strings.Contains(md, "no column") {
		t.Errorf("RenderTable() = %q want the no column message", md)
	}
	if strings.Contains(md, "|") {
		t.Errorf("RenderTable() = %q want no table", md)
	}
}

func TestRenderTables(t *testing.T) {
	full := NewTable("full", fuzzydate.MustTable(fuzzydate.Col("a", fuzzydate.Num(1))))
	empty := NewTable("empty", fuzzydate.MustTable(fuzzydate.Col("a")))

	md := RenderTables(full, empty)
	if !strings.Contains(md, "# full") || strings.Contains(md, "# empty") {
		t.Errorf("RenderTables() = %q want only the full table", md)
	}
	if got := RenderTables(empty); got != "" {
		t.Errorf("RenderTables(empty) = %q want nothing", got)
	}
}

func TestRenderPresentValue(t *testing.T) {
	testCases := []struct {
		kind       finance.Kind
		wantInputs int
	}{
		{finance.Perpetuity, 2},
		{finance.FutureValue, 3},
		{finance.GrowingPerpetuity, 3},
		{finance.GrowingAnnuity, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			in := finance.Inputs{Value: 100, Rate: 0.05, Growth: 0.02, Years: 10}
			md := RenderPresentValue(NewPresentValue(tc.kind, in, "100.00", "$2,000.00"))

			_, rows := tableShape(t, md)
			if rows != tc.wantInputs {
				t.Errorf("RenderPresentValue() has %d input rows want %d:\n%s", rows, tc.wantInputs, md)
			}
			for _, want := range []string{tc.kind.String(), "5.00%", "$2,000.00"} {
				if !strings.Contains(md, want) {
					t.Errorf("RenderPresentValue() = %q want it to contain %q", md, want)
				}
			}
		})
	}
}
