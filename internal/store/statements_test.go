package store

import (
	"encoding/json"
	"testing"
	"time"
)

func TestInsertSQL(t *testing.T) {
	r := NewRecord(F("a", 1), F("b", "2"))

	got := insertSQL("T", r)
	want := "INSERT INTO T (a,b) VALUES ('1','2');"
	if got != want {
		t.Errorf("insertSQL() = %q, want %q", got, want)
	}
}

func TestUpdateSQL(t *testing.T) {
	r := NewRecord(F("id", 3), F("name", "x"))

	got := updateSQL("T", r, 3)
	want := "UPDATE T SET id = '3',name = 'x' WHERE id = '3';"
	if got != want {
		t.Errorf("updateSQL() = %q, want %q", got, want)
	}
}

func TestSelectAndDeleteSQL(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"select all", selectAllSQL("T"), "SELECT * FROM T;"},
		{"select where", selectWhereSQL("T", "x=1"), "SELECT * FROM T WHERE x=1;"},
		{"delete where", deleteWhereSQL("T", "id=5"), "DELETE FROM T WHERE id=5;"},
		{"condition verbatim", selectWhereSQL("T", "name = 'o''brien'"), "SELECT * FROM T WHERE name = 'o''brien';"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestInsertSQL_DecodedJSON(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"a":1.0,"b":1e3,"c":{"x":1},"d":[1,2]}`), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	got := insertSQL("T", r)
	want := "INSERT INTO T (a,b,c,d) VALUES ('1','1000','[object Object]','1,2');"
	if got != want {
		t.Errorf("insertSQL() = %q, want %q", got, want)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"string", "hello", "hello"},
		{"bytes", []byte("raw"), "raw"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint8", uint8(9), "9"},
		{"float", 1.5, "1.5"},
		{"whole float", 2.0, "2"},
		{"float32", float32(0.25), "0.25"},
		{"time", ts, "2026-03-01T12:30:00Z"},
		{"json number", json.Number("12.50"), "12.5"},
		{"json number whole float", json.Number("1.0"), "1"},
		{"json number exponent", json.Number("1e3"), "1000"},
		{"json number integer", json.Number("42"), "42"},
		{"list", []any{json.Number("1"), "b", nil, true}, "1,b,,true"},
		{"nested list", []any{[]any{"a", "b"}, "c"}, "a,b,c"},
		{"object", map[string]any{"x": json.Number("1")}, "[object Object]"},
		{"quote not escaped", "it's", "it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
