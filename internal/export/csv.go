// Package export serialises uniform records to CSV. Textual values are
// always double-quoted with embedded quotes doubled; other values are
// emitted raw unless they contain a delimiter.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Field is one named value of a record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered field list. All records of one export share the same
// keys in the same order; the header comes from the first record.
type Record []Field

// Records renders rows as CSV. Empty input produces an empty string.
func Records(rows []Record) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	for i, field := range rows[0] {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(encodeField(field.Key, false))
	}

	for _, row := range rows {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(encodeValue(field.Value))
		}
	}

	return b.String()
}

func encodeValue(v any) string {
	switch value := v.(type) {
	case string:
		return encodeField(value, true)
	case fmt.Stringer:
		return encodeField(value.String(), false)
	case nil:
		return ""
	default:
		return encodeField(fmt.Sprint(value), false)
	}
}

// encodeField quotes textual fields unconditionally and anything else only
// when it contains a delimiter, doubling embedded quotes either way.
func encodeField(s string, textual bool) string {
	needsQuoting := textual || strings.ContainsAny(s, ",\"\n\r")
	if !needsQuoting {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteFile renders rows and writes them to path, creating parent
// directories as needed.
func WriteFile(path string, rows []Record) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Records(rows)), 0o644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
