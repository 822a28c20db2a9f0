package fuzzydate

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema is matched by every error about a column that is absent, duplicated or misplaced.
	ErrSchema = errors.New("schema error")
	// ErrComparison is matched by errors about date columns that cannot be ordered together.
	ErrComparison = errors.New("comparison error")
	// ErrOptions is matched by errors about invalid merge options.
	ErrOptions = errors.New("invalid merge options")
)

// SchemaError reports a column that is not where it is expected.
type SchemaError struct {
	Table  string // "main" or "aux", or empty when building a table
	Column string
	Reason string // e.g. "not found"
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("column %q in %s table: %s", e.Column, e.Table, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// ComparisonError reports a date column holding values that are not dates.
type ComparisonError struct {
	Table  string
	Column string
	Row    int
	Kind   Kind
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("column %q in %s table is not comparable as a date: row %d holds a %s", e.Column, e.Table, e.Row, e.Kind)
}

func (e *ComparisonError) Is(target error) bool { return target == ErrComparison }

func notFound(table, column string) error {
	return &SchemaError{Table: table, Column: column, Reason: "not found"}
}
