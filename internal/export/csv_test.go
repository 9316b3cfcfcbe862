package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecordsBasic(t *testing.T) {
	got := Records([]Record{
		{{Key: "a", Value: 1}, {Key: "b", Value: "x"}},
	})
	want := "a,b\n1,\"x\""
	if got != want {
		t.Fatalf("Records = %q, want %q", got, want)
	}
}

func TestRecordsEmpty(t *testing.T) {
	if got := Records(nil); got != "" {
		t.Fatalf("empty input should produce an empty string, got %q", got)
	}
	if got := Records([]Record{}); got != "" {
		t.Fatalf("empty input should produce an empty string, got %q", got)
	}
}

func TestRecordsEscaping(t *testing.T) {
	got := Records([]Record{
		{{Key: "name", Value: `Smith, "Ann"`}, {Key: "note", Value: "line1\nline2"}},
	})
	want := "name,note\n\"Smith, \"\"Ann\"\"\",\"line1\nline2\""
	if got != want {
		t.Fatalf("Records = %q, want %q", got, want)
	}
}

func TestRecordsNonTextualTypes(t *testing.T) {
	got := Records([]Record{
		{
			{Key: "rate", Value: decimal.NewFromFloat(98.5)},
			{Key: "visits", Value: int64(1200)},
			{Key: "flag", Value: true},
			{Key: "missing", Value: nil},
		},
	})
	want := "rate,visits,flag,missing\n98.5,1200,true,"
	if got != want {
		t.Fatalf("Records = %q, want %q", got, want)
	}
}

func TestRecordsMultipleRows(t *testing.T) {
	got := Records([]Record{
		{{Key: "a", Value: 1}, {Key: "b", Value: "x"}},
		{{Key: "a", Value: 2}, {Key: "b", Value: "y"}},
	})
	want := "a,b\n1,\"x\"\n2,\"y\""
	if got != want {
		t.Fatalf("Records = %q, want %q", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	rows := []Record{{{Key: "a", Value: 1}}}

	if err := WriteFile(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "a\n1" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestWriteFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("empty export should write an empty file, got %q", data)
	}
}
