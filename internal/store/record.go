package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Field is one column/value pair of a Record.
type Field struct {
	Column string
	Value  any
}

// F is shorthand for Field{Column: column, Value: value}.
func F(column string, value any) Field {
	return Field{Column: column, Value: value}
}

// Record is an ordered set of column values supplied to Insert and Update.
//
// Field order is the column order of the generated statement. Setting a
// column that is already present replaces its value in place.
type Record struct {
	fields []Field
}

// NewRecord builds a Record from fields in the given order.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Column, f.Value)
	}
	return r
}

// RecordFromMap builds a Record from m with columns in sorted order,
// since map iteration order is unspecified.
func RecordFromMap(m map[string]any) Record {
	columns := make([]string, 0, len(m))
	for c := range m {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	r := Record{fields: make([]Field, 0, len(columns))}
	for _, c := range columns {
		r.fields = append(r.fields, Field{Column: c, Value: m[c]})
	}
	return r
}

// Set assigns value to column.
func (r *Record) Set(column string, value any) {
	for i := range r.fields {
		if r.fields[i].Column == column {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Column: column, Value: value})
}

// Get returns the value of column and whether it is present.
func (r Record) Get(column string) (any, bool) {
	for _, f := range r.fields {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Column)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.Column, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
// Numbers keep their literal text (json.Number).
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: want JSON object", ErrInvalidRecord)
	}

	var out Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding record key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: non-string key %v", ErrInvalidRecord, tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding record value %s: %w", key, err)
		}
		out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}

	*r = out
	return nil
}
