package store

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRecord_Set(t *testing.T) {
	r := NewRecord(F("a", 1), F("b", 2))
	r.Set("a", 10)
	r.Set("c", 3)

	fields := r.Fields()
	if len(fields) != 3 {
		t.Fatalf("Len() = %d, want 3", len(fields))
	}

	wantCols := []string{"a", "b", "c"}
	for i, f := range fields {
		if f.Column != wantCols[i] {
			t.Errorf("fields[%d].Column = %q, want %q", i, f.Column, wantCols[i])
		}
	}
	if v, _ := r.Get("a"); v != 10 {
		t.Errorf("Get(a) = %v, want 10", v)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestRecord_FieldsIsCopy(t *testing.T) {
	r := NewRecord(F("a", 1))
	fields := r.Fields()
	fields[0].Value = 99

	if v, _ := r.Get("a"); v != 1 {
		t.Errorf("Get(a) = %v after mutating copy, want 1", v)
	}
}

func TestRecordFromMap(t *testing.T) {
	r := RecordFromMap(map[string]any{"z": 1, "a": 2, "m": 3})

	got := insertSQL("T", r)
	want := "INSERT INTO T (a,m,z) VALUES ('2','3','1');"
	if got != want {
		t.Errorf("insertSQL() = %q, want %q", got, want)
	}
}

func TestRecord_JSON(t *testing.T) {
	t.Run("keeps key order", func(t *testing.T) {
		var r Record
		if err := json.Unmarshal([]byte(`{"title":"x","id":3,"done":false}`), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}

		got := updateSQL("T", r, 3)
		want := "UPDATE T SET title = 'x',id = '3',done = 'false' WHERE id = '3';"
		if got != want {
			t.Errorf("updateSQL() = %q, want %q", got, want)
		}

		out, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(out) != `{"title":"x","id":3,"done":false}` {
			t.Errorf("Marshal() = %s", out)
		}
	})

	t.Run("rejects non-object", func(t *testing.T) {
		var r Record
		err := json.Unmarshal([]byte(`[1,2]`), &r)
		if !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("Unmarshal() error = %v, want ErrInvalidRecord", err)
		}
	})

	t.Run("nested values", func(t *testing.T) {
		var r Record
		if err := json.Unmarshal([]byte(`{"tags":["a","b"],"n":null}`), &r); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if v, _ := r.Get("n"); v != nil {
			t.Errorf("Get(n) = %v, want nil", v)
		}
		if r.Len() != 2 {
			t.Errorf("Len() = %d, want 2", r.Len())
		}
	})
}
