package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() TransactionRecord {
	return TransactionRecord{
		Timestamp:     time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC),
		TransactionID: "tx-1",
		Location:      "Grafton St",
		Category:      "analgesics",
		Supplier:      "MedSupply Ireland",
		Product:       "Paracetamol 500mg",
		Quantity:      2,
		Revenue:       6.98,
	}
}

func TestTransactionValidate(t *testing.T) {
	require.NoError(t, validTransaction().Validate())

	cases := []struct {
		name   string
		mutate func(*TransactionRecord)
		field  string
	}{
		{"zero timestamp", func(r *TransactionRecord) { r.Timestamp = time.Time{} }, "timestamp"},
		{"empty location", func(r *TransactionRecord) { r.Location = "" }, "location"},
		{"empty category", func(r *TransactionRecord) { r.Category = "" }, "category"},
		{"empty product", func(r *TransactionRecord) { r.Product = "" }, "product"},
		{"negative quantity", func(r *TransactionRecord) { r.Quantity = -1 }, "quantity"},
		{"negative revenue", func(r *TransactionRecord) { r.Revenue = -0.01 }, "revenue"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validTransaction()
			tc.mutate(&rec)

			err := rec.Validate()
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
			assert.Equal(t, "tx-1", fe.Record)
		})
	}
}

func TestTransactionValidateAllowsMissingSupplier(t *testing.T) {
	rec := validTransaction()
	rec.Supplier = ""
	assert.NoError(t, rec.Validate())
}

func TestSnapshotValidate(t *testing.T) {
	snap := InventorySnapshot{
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Location:       "Grafton St",
		Product:        "Plasters Assorted",
		Category:       "first_aid",
		QuantityOnHand: 120,
	}
	require.NoError(t, snap.Validate())

	snap.QuantityOnHand = -5
	var fe *FieldError
	require.ErrorAs(t, snap.Validate(), &fe)
	assert.Equal(t, "quantity_on_hand", fe.Field)
	assert.Equal(t, "Grafton St/Plasters Assorted", fe.Record)
}

func TestDayTruncatesToUTCMidnight(t *testing.T) {
	dublin := time.FixedZone("IST", 3600)

	// 00:30 local on the 11th is still 23:30 UTC on the 10th.
	local := time.Date(2026, 3, 11, 0, 30, 0, 0, dublin)
	day := Day(local)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "2026-03-10", DayKey(local))
}

func TestDayKeySameForAllTimesOnDate(t *testing.T) {
	morning := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, DayKey(morning), DayKey(night))
}
