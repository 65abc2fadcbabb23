package store

import (
	"encoding/json"

	"github.com/nerrad567/localstore/internal/bridge"
)

// Selection is the normalised result of Get and GetWhere.
//
// Its shape depends on how many rows matched:
//   - none: Value() is false
//   - one: Value() is that bridge.Row, unwrapped
//   - more: Value() is []bridge.Row in bridge order
//
// Existing callers rely on this shape, so it must not be regularised.
// Prefer Empty, Single and Many when branching in Go.
type Selection struct {
	rows []bridge.Row
}

func newSelection(rs *bridge.ResultSet) Selection {
	if rs == nil {
		return Selection{}
	}
	return Selection{rows: rs.Rows}
}

// Len returns the number of matched rows.
func (s Selection) Len() int {
	return len(s.rows)
}

// Empty reports whether no rows matched.
func (s Selection) Empty() bool {
	return len(s.rows) == 0
}

// Single returns the row when exactly one matched.
func (s Selection) Single() (bridge.Row, bool) {
	if len(s.rows) != 1 {
		return nil, false
	}
	return s.rows[0], true
}

// Many returns the rows when more than one matched.
func (s Selection) Many() ([]bridge.Row, bool) {
	if len(s.rows) < 2 {
		return nil, false
	}
	out := make([]bridge.Row, len(s.rows))
	copy(out, s.rows)
	return out, true
}

// Value returns false, a bridge.Row or a []bridge.Row.
func (s Selection) Value() any {
	switch len(s.rows) {
	case 0:
		return false
	case 1:
		return s.rows[0]
	default:
		rows, _ := s.Many()
		return rows
	}
}

// MarshalJSON encodes Value().
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value())
}
