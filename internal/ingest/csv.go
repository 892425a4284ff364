// Package ingest parses the host's raw CSV exports into domain records.
// Malformed rows are reported individually with their line number and field;
// they are never coerced and never abort the rest of the file.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// RowError ties a parse or validation failure to its source line.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// header indexes a CSV header row by lowercased column name, so column
// order in the export never matters.
type header map[string]int

func readHeader(r *csv.Reader, required []string) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return h, nil
}

func (h header) field(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// timestampFormats are accepted in export order of likelihood.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ReadTransactions parses a transaction export. The returned slice holds
// every valid record; each malformed row surfaces as one RowError. Only an
// unreadable stream or a broken header is a hard error.
func ReadTransactions(r io.Reader) ([]domain.TransactionRecord, []RowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	h, err := readHeader(cr, []string{"timestamp", "transaction_id", "location", "category", "product", "quantity", "revenue"})
	if err != nil {
		return nil, nil, fmt.Errorf("transactions csv: %w", err)
	}

	var records []domain.TransactionRecord
	var rowErrs []RowError

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		rec, err := parseTransaction(h, row)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		records = append(records, rec)
	}

	if len(rowErrs) > 0 {
		log.Warn().
			Int("valid", len(records)).
			Int("malformed", len(rowErrs)).
			Msg("transaction export contained malformed rows")
	}
	return records, rowErrs, nil
}

func parseTransaction(h header, row []string) (domain.TransactionRecord, error) {
	rec := domain.TransactionRecord{
		TransactionID: h.field(row, "transaction_id"),
		Location:      h.field(row, "location"),
		Category:      h.field(row, "category"),
		Supplier:      h.field(row, "supplier"),
		Product:       h.field(row, "product"),
	}

	ts, err := parseTimestamp(h.field(row, "timestamp"))
	if err != nil {
		return rec, &domain.FieldError{Record: rec.TransactionID, Field: "timestamp", Reason: err.Error()}
	}
	rec.Timestamp = ts

	qty, err := strconv.Atoi(h.field(row, "quantity"))
	if err != nil {
		return rec, &domain.FieldError{Record: rec.TransactionID, Field: "quantity", Reason: fmt.Sprintf("not an integer: %q", h.field(row, "quantity"))}
	}
	rec.Quantity = qty

	rev, err := strconv.ParseFloat(h.field(row, "revenue"), 64)
	if err != nil {
		return rec, &domain.FieldError{Record: rec.TransactionID, Field: "revenue", Reason: fmt.Sprintf("not a number: %q", h.field(row, "revenue"))}
	}
	rec.Revenue = rev

	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// ReadInventory parses an inventory snapshot export with the same
// per-row error contract as ReadTransactions.
func ReadInventory(r io.Reader) ([]domain.InventorySnapshot, []RowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	h, err := readHeader(cr, []string{"date", "location", "product", "category", "quantity_on_hand"})
	if err != nil {
		return nil, nil, fmt.Errorf("inventory csv: %w", err)
	}

	var snapshots []domain.InventorySnapshot
	var rowErrs []RowError

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		snap, err := parseSnapshot(h, row)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		snapshots = append(snapshots, snap)
	}

	if len(rowErrs) > 0 {
		log.Warn().
			Int("valid", len(snapshots)).
			Int("malformed", len(rowErrs)).
			Msg("inventory export contained malformed rows")
	}
	return snapshots, rowErrs, nil
}

func parseSnapshot(h header, row []string) (domain.InventorySnapshot, error) {
	snap := domain.InventorySnapshot{
		Location: h.field(row, "location"),
		Product:  h.field(row, "product"),
		Category: h.field(row, "category"),
	}
	key := snap.Location + "/" + snap.Product

	date, err := parseTimestamp(h.field(row, "date"))
	if err != nil {
		return snap, &domain.FieldError{Record: key, Field: "date", Reason: err.Error()}
	}
	snap.Date = date

	qty, err := strconv.Atoi(h.field(row, "quantity_on_hand"))
	if err != nil {
		return snap, &domain.FieldError{Record: key, Field: "quantity_on_hand", Reason: fmt.Sprintf("not an integer: %q", h.field(row, "quantity_on_hand"))}
	}
	snap.QuantityOnHand = qty

	if err := snap.Validate(); err != nil {
		return snap, err
	}
	return snap, nil
}
