package store

import "github.com/shopspring/decimal"

// TrackedItem is one user-flagged entity/driver pair under observation.
// JSON field names match the payload the dashboard persisted historically.
type TrackedItem struct {
	ID            string          `json:"id"`
	DateAdded     string          `json:"dateAdded"`
	EntityName    string          `json:"entity_name"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	Driver        string          `json:"driver"`
	BaselineValue decimal.Decimal `json:"baseline_value"`
	BaselineDate  string          `json:"baseline_date,omitempty"`
}
