// Package store persists the user's tracked-items list through a pluggable
// key-value capability: the whole list lives under one key as a JSON array
// and is read-modify-written on every mutation. Concurrent writers can
// overwrite each other; there is no conflict detection.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const trackedItemsKey = "trackedItems"

// TrackedItems provides CRUD over the persisted tracked-items list.
type TrackedItems struct {
	kv     KeyValue
	logger zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewTrackedItems constructs the store on top of a key-value backend.
func NewTrackedItems(kv KeyValue, logger zerolog.Logger) *TrackedItems {
	return &TrackedItems{
		kv:     kv,
		logger: logger.With().Str("component", "tracked_items").Logger(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns the persisted collection, empty if nothing was stored yet.
func (t *TrackedItems) List(ctx context.Context) ([]TrackedItem, error) {
	data, err := t.kv.Get(ctx, trackedItemsKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []TrackedItem{}, nil
	}

	var items []TrackedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode tracked items: %w", err)
	}
	return items, nil
}

// Add stamps a unique id and creation timestamp onto the item, appends it,
// persists the full sequence, and returns it.
func (t *TrackedItems) Add(ctx context.Context, item TrackedItem) ([]TrackedItem, error) {
	items, err := t.List(ctx)
	if err != nil {
		return nil, err
	}

	item.ID = t.newID()
	item.DateAdded = t.now().UTC().Format(time.RFC3339)
	items = append(items, item)

	if err := t.persist(ctx, items); err != nil {
		return nil, err
	}

	t.logger.Info().Str("id", item.ID).Str("entity", item.EntityName).Str("driver", item.Driver).Msg("item tracked")
	return items, nil
}

// Remove filters out the matching id, persists and returns the result. A
// missing id leaves the sequence unchanged.
func (t *TrackedItems) Remove(ctx context.Context, id string) ([]TrackedItem, error) {
	items, err := t.List(ctx)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return items, nil
	}

	if err := t.persist(ctx, kept); err != nil {
		return nil, err
	}

	t.logger.Info().Str("id", id).Msg("item untracked")
	return kept, nil
}

func (t *TrackedItems) persist(ctx context.Context, items []TrackedItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode tracked items: %w", err)
	}
	if err := t.kv.Set(ctx, trackedItemsKey, data); err != nil {
		return fmt.Errorf("persist tracked items: %w", err)
	}
	return nil
}
