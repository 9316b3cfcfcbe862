package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newFileStore(t *testing.T) *TrackedItems {
	t.Helper()
	return NewTrackedItems(NewFileKV(t.TempDir()), zerolog.Nop())
}

func TestListEmpty(t *testing.T) {
	s := newFileStore(t)
	items, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list on empty store: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty sequence, got %d items", len(items))
	}
}

func TestAddThenListThenRemove(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	added, err := s.Add(ctx, TrackedItem{
		EntityName:    "North Region",
		EntityType:    "region",
		EntityID:      "1",
		Driver:        "copay_leakage",
		BaselineValue: decimal.NewFromFloat(-0.9),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("add should return the updated sequence, got %d items", len(added))
	}

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(items))
	}
	if items[0].ID == "" {
		t.Fatal("stored item must carry a non-empty id")
	}
	if _, err := time.Parse(time.RFC3339, items[0].DateAdded); err != nil {
		t.Fatalf("dateAdded should parse as RFC3339: %v", err)
	}

	after, err := s.Remove(ctx, items[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("remove should empty the sequence, got %d items", len(after))
	}

	items, err = s.List(ctx)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("removal should persist, got %d items", len(items))
	}
}

func TestAddGeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		items, err := s.Add(ctx, TrackedItem{EntityName: "x", Driver: "payer_mix"})
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		id := items[len(items)-1].ID
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestRemoveMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	if _, err := s.Add(ctx, TrackedItem{EntityName: "kept"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := s.Remove(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("remove of missing id should not error: %v", err)
	}
	if len(items) != 1 || items[0].EntityName != "kept" {
		t.Fatalf("sequence should be unchanged, got %+v", items)
	}
}

func TestFileKVAbsentKey(t *testing.T) {
	kv := NewFileKV(t.TempDir())
	data, err := kv.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("absent key should not error: %v", err)
	}
	if data != nil {
		t.Fatalf("absent key should return nil, got %q", data)
	}
}

func TestFileKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewFileKV(t.TempDir())

	if err := kv.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Fatalf("unexpected value %q", data)
	}
}
