package bridge

// Row maps column name to stored value.
//
// Values are int64, float64, string (TEXT and BLOB columns) or nil.
type Row map[string]any

// ResultSet is the bridge's answer to one statement.
//
// Statements that return rows fill Columns and Rows. Other statements
// fill InsertID and RowsAffected.
type ResultSet struct {
	Columns      []string `json:"columns,omitempty"`
	Rows         []Row    `json:"rows"`
	InsertID     int64    `json:"insertId,omitempty"`
	RowsAffected int64    `json:"rowsAffected"`
}

// Len returns the number of rows in the set.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Item returns row i, or nil when i is out of range.
func (r *ResultSet) Item(i int) Row {
	if r == nil || i < 0 || i >= len(r.Rows) {
		return nil
	}
	return r.Rows[i]
}
