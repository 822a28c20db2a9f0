package fuzzydate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObject writes one JSONL line: the cells of a row as a JSON object, in column order.
// Its zero value is ready to use.
type jsonObject struct {
	buf         bytes.Buffer
	omitMissing bool // missing cells are left out instead of written as null
	err         error
}

// Set appends the property key with value v.
func (o *jsonObject) Set(key string, v Value) {
	if o.err != nil || (o.omitMissing && v.IsMissing()) {
		return
	}
	val, err := v.MarshalJSON()
	if err != nil {
		o.err = fmt.Errorf("cannot marshal column %q: %w", key, err)
		return
	}
	k, _ := json.Marshal(key)
	if o.buf.Len() == 0 {
		o.buf.WriteByte('{')
	} else {
		o.buf.WriteByte(',')
	}
	o.buf.Write(k)
	o.buf.WriteByte(':')
	o.buf.Write(val)
}

// Line closes the object and returns it followed by a new line.
func (o *jsonObject) Line() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.buf.Len() == 0 {
		o.buf.WriteByte('{')
	}
	o.buf.WriteString("}\n")
	return o.buf.Bytes(), nil
}
