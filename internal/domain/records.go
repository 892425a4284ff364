package domain

import (
	"fmt"
	"time"
)

// TransactionRecord is a single immutable sales fact from the host data layer.
type TransactionRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	TransactionID string    `json:"transaction_id"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	Supplier      string    `json:"supplier"`
	Product       string    `json:"product"`
	Quantity      int       `json:"quantity"`
	Revenue       float64   `json:"revenue"`
}

// InventorySnapshot is a point-in-time stock level for one product at one location.
type InventorySnapshot struct {
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	Product        string    `json:"product"`
	Category       string    `json:"category"`
	QuantityOnHand int       `json:"quantity_on_hand"`
}

// FieldError reports a malformed input record. It names the offending record
// and field so the host can act on it; invalid data is never coerced.
type FieldError struct {
	Record string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("malformed record %s: field %q %s", e.Record, e.Field, e.Reason)
}

// Validate checks the transaction against its schema. A non-nil result is a
// *FieldError identifying the first violated field.
func (t TransactionRecord) Validate() error {
	if t.Timestamp.IsZero() {
		return &FieldError{Record: t.TransactionID, Field: "timestamp", Reason: "is required"}
	}
	if t.Location == "" {
		return &FieldError{Record: t.TransactionID, Field: "location", Reason: "is required"}
	}
	if t.Category == "" {
		return &FieldError{Record: t.TransactionID, Field: "category", Reason: "is required"}
	}
	if t.Product == "" {
		return &FieldError{Record: t.TransactionID, Field: "product", Reason: "is required"}
	}
	if t.Quantity < 0 {
		return &FieldError{Record: t.TransactionID, Field: "quantity", Reason: fmt.Sprintf("must be >= 0, got %d", t.Quantity)}
	}
	if t.Revenue < 0 {
		return &FieldError{Record: t.TransactionID, Field: "revenue", Reason: fmt.Sprintf("must be >= 0, got %.2f", t.Revenue)}
	}
	return nil
}

// Validate checks the snapshot against its schema.
func (s InventorySnapshot) Validate() error {
	key := fmt.Sprintf("%s/%s", s.Location, s.Product)
	if s.Date.IsZero() {
		return &FieldError{Record: key, Field: "date", Reason: "is required"}
	}
	if s.Location == "" {
		return &FieldError{Record: key, Field: "location", Reason: "is required"}
	}
	if s.Product == "" {
		return &FieldError{Record: key, Field: "product", Reason: "is required"}
	}
	if s.QuantityOnHand < 0 {
		return &FieldError{Record: key, Field: "quantity_on_hand", Reason: fmt.Sprintf("must be >= 0, got %d", s.QuantityOnHand)}
	}
	return nil
}

// Day truncates a timestamp to its UTC calendar date. All per-day keys in the
// engine go through this so that two timestamps on the same date always map
// to the same key.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey renders a date as its canonical YYYY-MM-DD cache key.
func DayKey(t time.Time) string {
	return Day(t).Format("2006-01-02")
}
