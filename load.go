package fuzzydate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a table from a file, the format is chosen from the extension:
// .jsonl (or .json), .csv or .xlsx.
func Load(path string, opts DecodeOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jsonl", ".json":
		return DecodeJSONL(f, path, opts)
	case ".csv":
		return DecodeCSV(f, path, opts)
	case ".xlsx":
		return DecodeXLSX(f, path, opts)
	default:
		return nil, fmt.Errorf("cannot load %q: unsupported table format %q", path, ext)
	}
}

// Save writes a table to a file, the format is chosen from the extension like Load.
// The file is only written once the whole table is encoded.
func Save(path string, t *Table, opts EncodeOptions) error {
	var b bytes.Buffer
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jsonl", ".json":
		err = EncodeJSONL(&b, t, opts)
	case ".csv":
		err = EncodeCSV(&b, t)
	case ".xlsx":
		err = EncodeXLSX(&b, t)
	default:
		return fmt.Errorf("cannot save %q: unsupported table format %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", path, err)
	}
	return os.WriteFile(path, b.Bytes(), 0644)
}
