// Package csvexport renders result sets in the spreadsheet friendly CSV
// dialect of the study export: UTF-8 with a byte order mark, comma
// separated, LF line endings, quotes only where needed.
package csvexport

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BOM makes spreadsheet tools detect UTF-8.
const BOM = "\ufeff"

const dateLayout = "2006-01-02"

// Encode renders a header line of columns followed by one line per row.
// Zero rows produce an empty result without header or BOM.
func Encode(columns []string, rows [][]interface{}) []byte {
	if len(rows) == 0 {
		return []byte{}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinFields(columns))
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = FormatValue(v)
		}
		lines = append(lines, joinFields(fields))
	}
	return []byte(BOM + strings.Join(lines, "\n"))
}

func joinFields(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, ",")
}

// Escape quotes s when it contains a comma, a quote or a line break.
func Escape(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatValue renders a scanned column value. Nil is empty and time values
// are calendar dates.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(dateLayout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(dateLayout)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
