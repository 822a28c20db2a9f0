package fuzzydate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// DecodeCSV reads a table from CSV with a header row. name is for error messages only.
//
// Empty cells are missing, numbers and booleans are recognized, date columns
// are parsed as declared in opts.
func DecodeCSV(r io.Reader, name string, opts DecodeOptions) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return NewTable()
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %s: %w", name, err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse error %s: %w", name, err)
	}
	return fromRecords(name, header, records, opts, func(s string) (Value, error) { return parseCell(s), nil })
}

// fromRecords builds a table from text records, padding short records with missing values.
// line numbers in errors count the header as line 1.
func fromRecords(name string, header []string, records [][]string, opts DecodeOptions, cell func(string) (Value, error)) (*Table, error) {
	cols := make([]Column, len(header))
	for j, h := range header {
		cols[j] = Column{Name: h, Values: make([]Value, len(records))}
	}
	for i, rec := range records {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("parse error %s:%v: %d cells for %d columns", name, i+2, len(rec), len(header))
		}
		for j, raw := range rec {
			var v Value
			var err error
			switch {
			case raw == "":
			case opts.isDate(header[j]):
				v, err = parseTemporal(raw)
			default:
				v, err = cell(raw)
			}
			if err != nil {
				return nil, fmt.Errorf("parse error %s:%v: column %q: %w", name, i+2, header[j], err)
			}
			cols[j].Values[i] = v
		}
	}
	return NewTable(cols...)
}

// EncodeCSV writes t as CSV with a header row. Missing values are empty cells.
func EncodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.names); err != nil {
		return err
	}
	record := make([]string, len(t.names))
	for i := range t.n {
		for j, name := range t.names {
			record[j] = t.values[name][i].String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
