package fuzzydate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file contains the JSONL codec of tables: one JSON object per line, one
// property per column. It is the format used to keep tables human-readable and
// git-friendly.
//
//   Decode: read every line, record the property names in the order they are
//           first seen, and convert each property into a Value.
//
//   Encode: write one object per row, with properties in column order.

// DecodeOptions tells decoders how to read cells that are not self describing.
type DecodeOptions struct {
	// Dates are the columns parsed as a date (2006-01-02) or a time (RFC 3339).
	Dates []string

	// Paths maps extra column names to a JSONPath expression evaluated on
	// each JSONL object, e.g. {"beta": "$.risk.beta"}. They are appended after
	// the plain columns, sorted by name. Nested objects and arrays are only
	// reachable this way.
	Paths map[string]string

	// Sheet is the XLSX sheet to read, the first one by default.
	Sheet string
}

// isDate reports whether column name is declared as a date column.
func (o DecodeOptions) isDate(name string) bool { return slices.Contains(o.Dates, name) }

// MarshalJSON encodes numbers as JSON numbers, dates and times as strings and missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		return []byte(v.num.String()), nil
	case Text:
		return json.Marshal(v.str)
	case Bool:
		return json.Marshal(v.b)
	case Day, Time:
		return json.Marshal(v.String())
	}
	return []byte("null"), nil
}

// objectKeys returns the top level property names of a JSON object, in order.
// Properties holding an object or an array are not columns and are left out.
func objectKeys(line []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		return nil, fmt.Errorf("not a JSON object")
	}
	var keys []string
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := t.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if raw = bytes.TrimSpace(raw); len(raw) > 0 && raw[0] != '{' && raw[0] != '[' {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// jsonValue converts a decoded JSON value into a Value of column name.
func jsonValue(name string, jval any, opts DecodeOptions) (Value, error) {
	switch x := jval.(type) {
	case nil:
		return Null(), nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return Value{}, fmt.Errorf("column %q: invalid number %q: %w", name, x, err)
		}
		return Num(d), nil
	case float64:
		return Num(x), nil
	case bool:
		return Flag(x), nil
	case string:
		if opts.isDate(name) {
			if x == "" {
				return Null(), nil
			}
			v, err := parseTemporal(x)
			if err != nil {
				return Value{}, fmt.Errorf("column %q: %w", name, err)
			}
			return v, nil
		}
		return Str(x), nil
	default:
		return Value{}, fmt.Errorf("column %q: nested %T values are not supported, extract them with a path", name, jval)
	}
}

// DecodeJSONL reads a table from JSONL. name is for error messages only.
func DecodeJSONL(r io.Reader, name string, opts DecodeOptions) (*Table, error) {
	var (
		names []string
		rows  []Row
	)
	pathNames := slices.Sorted(maps.Keys(opts.Paths))
	paths := make(map[string]func(any) (any, error), len(pathNames))
	for _, k := range pathNames {
		eval, err := jsonpath.New(opts.Paths[k])
		if err != nil {
			return nil, fmt.Errorf("invalid path %q for column %q: %w", opts.Paths[k], k, err)
		}
		paths[k] = func(jobj any) (any, error) { return eval(context.Background(), jobj) }
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		// Start simply ignoring empty lines.
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		keys, err := objectKeys(line)
		if err != nil {
			return nil, fmt.Errorf("parse error %s:%v: %w", name, i, err)
		}
		for _, k := range keys {
			if !slices.Contains(names, k) {
				names = append(names, k)
			}
		}

		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		jobj := make(map[string]any)
		if err := dec.Decode(&jobj); err != nil {
			return nil, fmt.Errorf("parse error %s:%v: not a correct json: %w", name, i, err)
		}

		row := make(Row, len(jobj)+len(pathNames))
		for _, k := range keys {
			if row[k], err = jsonValue(k, jobj[k], opts); err != nil {
				return nil, fmt.Errorf("parse error %s:%v: %w", name, i, err)
			}
		}
		for _, k := range pathNames {
			jval, err := paths[k](jobj)
			if err != nil {
				// an unknown key is a missing value, not an error
				row[k] = Null()
				continue
			}
			// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
			// an empty list is missing, a single answer is unwrapped, more is an error.
			if jlist, ok := jval.([]any); ok {
				switch len(jlist) {
				case 0:
					row[k] = Null()
					continue
				case 1:
					jval = jlist[0]
				default:
					return nil, fmt.Errorf("parse error %s:%v: path %q: %d values for column %q, want one", name, i, opts.Paths[k], len(jlist), k)
				}
			}
			if row[k], err = jsonValue(k, jval, opts); err != nil {
				return nil, fmt.Errorf("parse error %s:%v: path %q: %w", name, i, opts.Paths[k], err)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", name, err)
	}

	for _, k := range pathNames {
		if slices.Contains(names, k) {
			return nil, fmt.Errorf("%s: path column %q is also a property: %w", name, k, ErrSchema)
		}
	}
	return FromRows(append(names, pathNames...), rows...)
}

// EncodeOptions tells encoders how to write a table.
type EncodeOptions struct {
	// OmitMissing drops missing cells from JSONL objects instead of writing null.
	OmitMissing bool
}

// EncodeJSONL writes t as JSONL, one object per row with properties in column order.
func EncodeJSONL(w io.Writer, t *Table, opts EncodeOptions) error {
	for i := range t.n {
		o := jsonObject{omitMissing: opts.OmitMissing}
		for _, name := range t.names {
			o.Set(name, t.values[name][i])
		}
		line, err := o.Line()
		if err != nil {
			return fmt.Errorf("cannot encode row %d: %w", i, err)
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
