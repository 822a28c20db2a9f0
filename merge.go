package fuzzydate

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Names of the intermediate columns kept by a debug merge.
const (
	ColumnNearest  = "date_nearest" // aux date picked by the nearest attempt
	ColumnBackward = "date_back"    // aux date picked by the backward (as-of) attempt
	ColumnTolerant = "date_approx"  // aux date picked by the tolerant nearest attempt

	SuffixNearest  = "_x"
	SuffixBackward = "_y"
	SuffixTolerant = "_approx"
)

// MergeOptions configures Merge.
type MergeOptions struct {
	DateMain string // date column of the main table
	DateAux  string // date column of the aux table

	// JoinBy columns must exist in both tables and hold equal values for two rows to match.
	JoinBy []string

	// Features are the aux columns copied into main.
	// By default all aux columns except DateAux and JoinBy.
	Features []string

	// Tolerance is the widest date distance accepted by the tolerant attempt.
	Tolerance time.Duration

	// Debug keeps the per-attempt date and feature columns in the output.
	Debug bool

	// KeepOrder restores the order of main rows, they are sorted by date otherwise.
	KeepOrder bool
}

// features returns the aux columns to merge, after checking every column referenced by o.
func (o MergeOptions) features(main, aux *Table) ([]string, error) {
	if o.DateMain == "" || o.DateAux == "" {
		return nil, fmt.Errorf("%w: both date columns must be named", ErrOptions)
	}
	if o.Tolerance < 0 {
		return nil, fmt.Errorf("%w: negative tolerance %v", ErrOptions, o.Tolerance)
	}
	if !main.Has(o.DateMain) {
		return nil, notFound("main", o.DateMain)
	}
	if !aux.Has(o.DateAux) {
		return nil, notFound("aux", o.DateAux)
	}
	for _, name := range o.JoinBy {
		if !main.Has(name) {
			return nil, notFound("main", name)
		}
		if !aux.Has(name) {
			return nil, notFound("aux", name)
		}
	}

	features := o.Features
	if features == nil {
		for _, name := range aux.names {
			if name != o.DateAux && !slices.Contains(o.JoinBy, name) {
				features = append(features, name)
			}
		}
	}
	for i, name := range features {
		switch {
		case !aux.Has(name):
			return nil, notFound("aux", name)
		case name == o.DateAux:
			return nil, &SchemaError{Table: "aux", Column: name, Reason: "is the date column and cannot be a feature"}
		case slices.Contains(o.JoinBy, name):
			return nil, &SchemaError{Table: "aux", Column: name, Reason: "is a join column and cannot be a feature"}
		case slices.Contains(features[:i], name):
			return nil, &SchemaError{Table: "aux", Column: name, Reason: "is listed twice as a feature"}
		}
	}
	return features, nil
}

// outputs lists the names of the columns Merge appends to main.
func (o MergeOptions) outputs(features []string) []string {
	var names []string
	if o.Debug {
		for _, st := range strategies(0) {
			names = append(names, st.column)
			for _, f := range features {
				names = append(names, f+st.suffix)
			}
		}
	}
	return append(names, features...)
}

// instants reads the date column of t as instants.
// Missing dates are reported unknown, any other non date value is an error.
func instants(t *Table, table, column string) ([]time.Time, []bool, error) {
	at := make([]time.Time, t.n)
	known := make([]bool, t.n)
	for i, v := range t.values[column] {
		if v.IsMissing() {
			continue
		}
		if !v.IsTemporal() {
			return nil, nil, &ComparisonError{Table: table, Column: column, Row: i, Kind: v.Kind()}
		}
		at[i], _ = v.Instant()
		known[i] = true
	}
	return at, known, nil
}

// Merge returns main enriched with the feature columns of aux, matched by date proximity.
//
// Three attempts are made for every main row, each picking at most one aux row
// in the same JoinBy group:
//   - nearest: the closest date in either direction, the earlier one on a tie;
//   - backward: the latest date on or before the main date;
//   - tolerant: nearest, if no further than Tolerance.
//
// Each feature then takes the first value that is not missing from the
// tolerant, the backward and finally the nearest attempt.
//
// The result has exactly one row per main row, sorted by main date unless
// KeepOrder is set. Inputs are not modified.
func Merge(main, aux *Table, opts MergeOptions) (*Table, error) {
	features, err := opts.features(main, aux)
	if err != nil {
		return nil, err
	}
	outputs := opts.outputs(features)
	for i, name := range outputs {
		if main.Has(name) || slices.Contains(outputs[:i], name) {
			return nil, &SchemaError{Table: "main", Column: name, Reason: "already exists and would be overwritten by the merge"}
		}
	}
	// Both date columns must hold instants, so that they are mutually comparable.
	if _, _, err := instants(aux, "aux", opts.DateAux); err != nil {
		return nil, err
	}
	if _, _, err := instants(main, "main", opts.DateMain); err != nil {
		return nil, err
	}

	order := main.order(opts.DateMain)
	left := main.take(order)
	right := aux.take(aux.order(opts.DateAux))

	at, known, _ := instants(left, "main", opts.DateMain)
	keys := make([]string, left.n)
	for i := range keys {
		keys[i] = groupKey(left, i, opts.JoinBy)
	}
	g := index(right, opts.DateAux, opts.JoinBy)

	// The attempts only read shared state, each one writes its own slice.
	sts := strategies(opts.Tolerance)
	matches := make([][]int, len(sts))
	var eg errgroup.Group
	for k, st := range sts {
		eg.Go(func() error {
			matches[k] = st.match(left, keys, at, known, g)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cols := make([]Column, 0, len(left.names)+len(outputs))
	for _, name := range left.names {
		cols = append(cols, Column{Name: name, Values: left.values[name]})
	}
	if opts.Debug {
		for k, st := range sts {
			cols = append(cols, gather(right, opts.DateAux, st.column, matches[k]))
			for _, f := range features {
				cols = append(cols, gather(right, f, f+st.suffix, matches[k]))
			}
		}
	}
	for _, f := range features {
		cols = append(cols, resolve(right, f, matches))
	}

	res, err := NewTable(cols...)
	if err != nil {
		return nil, fmt.Errorf("cannot assemble merged table: %w", err)
	}
	if opts.KeepOrder {
		restore := make([]int, len(order))
		for sorted, original := range order {
			restore[original] = sorted
		}
		res = res.take(restore)
	}
	return res, nil
}

// gather returns the values of column src for the matched aux rows, under a new name.
func gather(aux *Table, src, name string, rows []int) Column {
	values := make([]Value, len(rows))
	for i, j := range rows {
		if j >= 0 {
			values[i] = aux.values[src][j]
		}
	}
	return Column{Name: name, Values: values}
}

// resolve returns the final values of feature f.
// matches are in strategy order, the last attempt has the highest priority.
func resolve(aux *Table, f string, matches [][]int) Column {
	src := aux.values[f]
	values := make([]Value, len(matches[0]))
	for i := range values {
		for k := len(matches) - 1; k >= 0; k-- {
			if j := matches[k][i]; j >= 0 && !src[j].IsMissing() {
				values[i] = src[j]
				break
			}
		}
	}
	return Column{Name: f, Values: values}
}
