package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Statement builders. Table names, conditions and values are concatenated
// verbatim: nothing is escaped or parameterised. Callers that pass
// untrusted text get exactly the SQL they asked for.

func selectAllSQL(table string) string {
	return "SELECT * FROM " + table + ";"
}

func selectWhereSQL(table, condition string) string {
	return "SELECT * FROM " + table + " WHERE " + condition + ";"
}

// insertSQL renders INSERT INTO t (a,b) VALUES ('1','2');
func insertSQL(table string, r Record) string {
	columns := make([]string, 0, r.Len())
	values := make([]string, 0, r.Len())
	for _, f := range r.fields {
		columns = append(columns, f.Column)
		values = append(values, quote(f.Value))
	}

	return "INSERT INTO " + table +
		" (" + strings.Join(columns, ",") + ")" +
		" VALUES (" + strings.Join(values, ",") + ");"
}

// updateSQL renders UPDATE t SET a = '1',b = '2' WHERE id = '<id>';
// The id column stays in the SET list when the record carries it.
func updateSQL(table string, r Record, id any) string {
	sets := make([]string, 0, r.Len())
	for _, f := range r.fields {
		sets = append(sets, f.Column+" = "+quote(f.Value))
	}

	return "UPDATE " + table +
		" SET " + strings.Join(sets, ",") +
		" WHERE id = " + quote(id) + ";"
}

func deleteWhereSQL(table, condition string) string {
	return "DELETE FROM " + table + " WHERE " + condition + ";"
}

// quote wraps the text form of v in single quotes. Embedded quotes are
// left alone.
func quote(v any) string {
	return "'" + formatValue(v) + "'"
}

// formatValue renders v as statement text. Numbers and strings are not
// distinguished; every value ends up quoted by the caller.
//
// JSON numbers render in shortest decimal form (1.0 and 1e3 become 1 and
// 1000). Lists render as their comma-joined elements with nil elements
// empty, and objects render as [object Object].
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return val.String()
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			if e != nil {
				parts[i] = formatValue(e)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any, Record:
		return "[object Object]"
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32, int16, int8, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
