package fuzzydate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/fuzzydate/date"
	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads a table from a workbook sheet whose first row is the header.
//
// Cells are read raw, so dates stored as serial numbers are converted when the
// column is declared in opts.Dates.
func DecodeXLSX(r io.Reader, name string, opts DecodeOptions) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %s: %w", name, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheet", name)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q of %s: %w", sheet, name, err)
	}
	if len(rows) == 0 {
		return NewTable()
	}

	// dates are parsed by fromRecords, serial numbers are turned into text first
	records := rows[1:]
	for _, rec := range records {
		for j, raw := range rec {
			if j < len(rows[0]) && opts.isDate(rows[0][j]) {
				rec[j] = fromSerial(raw)
			}
		}
	}
	return fromRecords(name+"!"+sheet, rows[0], records, opts, func(s string) (Value, error) { return parseCell(s), nil })
}

// fromSerial rewrites an Excel serial date as text, leaving any other text untouched.
func fromSerial(raw string) string {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	at, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	if d := date.Of(at); d.Time().Equal(at) {
		return d.String()
	}
	return at.Format("2006-01-02T15:04:05Z07:00")
}

// EncodeXLSX writes t in the first sheet of a new workbook.
func EncodeXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	header := make([]any, len(t.names))
	for j, name := range t.names {
		header[j] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := range t.n {
		row := make([]any, len(t.names))
		for j, name := range t.names {
			row[j] = xlsxCell(t.values[name][i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d: %w", i, err)
		}
	}
	return f.Write(w)
}

// xlsxCell converts a value into the go type excelize writes natively.
func xlsxCell(v Value) any {
	switch v.kind {
	case Number:
		return v.num.InexactFloat64()
	case Text:
		return v.str
	case Bool:
		return v.b
	case Day:
		return v.day.Time()
	case Time:
		return v.at.UTC()
	}
	return nil
}
