package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/domain"
)

const transactionsCSV = `timestamp,transaction_id,location,category,supplier,product,quantity,revenue
2026-03-10 09:15:00,tx-1,Grafton St,cold_flu_medication,MedSupply Ireland,Day & Night Capsules,2,13.98
2026-03-10 09:20:00,tx-2,Baggot St,analgesics,MedSupply Ireland,Paracetamol 500mg,1,3.49
not-a-date,tx-3,Grafton St,analgesics,MedSupply Ireland,Ibuprofen 200mg,1,4.99
2026-03-10 10:05:00,tx-4,Grafton St,analgesics,MedSupply Ireland,Ibuprofen 200mg,-2,4.99
2026-03-10 10:06:00,tx-5,O'Connell St,first_aid,,Plasters Assorted,1,2.99
`

func TestReadTransactions(t *testing.T) {
	records, rowErrs, err := ReadTransactions(strings.NewReader(transactionsCSV))
	require.NoError(t, err)

	assert.Len(t, records, 3)
	assert.Equal(t, "tx-1", records[0].TransactionID)
	assert.Equal(t, 13.98, records[0].Revenue)

	require.Len(t, rowErrs, 2)

	// Line 4 has an unparseable timestamp.
	assert.Equal(t, 4, rowErrs[0].Line)
	var fe *domain.FieldError
	require.ErrorAs(t, rowErrs[0], &fe)
	assert.Equal(t, "timestamp", fe.Field)

	// Line 5 fails schema validation on quantity.
	assert.Equal(t, 5, rowErrs[1].Line)
	require.ErrorAs(t, rowErrs[1], &fe)
	assert.Equal(t, "quantity", fe.Field)
	assert.Equal(t, "tx-4", fe.Record)
}

func TestReadTransactionsColumnOrderIndependent(t *testing.T) {
	shuffled := `revenue,quantity,product,supplier,category,location,transaction_id,timestamp
9.99,3,Vitamin C 1000mg,HealthCo,vitamins,Grafton St,tx-9,2026-03-11T14:30:00Z
`
	records, rowErrs, err := ReadTransactions(strings.NewReader(shuffled))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, "tx-9", records[0].TransactionID)
	assert.Equal(t, 3, records[0].Quantity)
	assert.Equal(t, 9.99, records[0].Revenue)
}

func TestReadTransactionsMissingColumnIsHardError(t *testing.T) {
	_, _, err := ReadTransactions(strings.NewReader("timestamp,location\n2026-03-10,Grafton St\n"))
	assert.ErrorContains(t, err, "missing required column")
}

const inventoryCSV = `date,location,product,category,quantity_on_hand
2026-03-10,Grafton St,Day & Night Capsules,cold_flu_medication,48
2026-03-10,Baggot St,Paracetamol 500mg,analgesics,not-a-number
2026-03-10,O'Connell St,Plasters Assorted,first_aid,120
`

func TestReadInventory(t *testing.T) {
	snapshots, rowErrs, err := ReadInventory(strings.NewReader(inventoryCSV))
	require.NoError(t, err)

	assert.Len(t, snapshots, 2)
	assert.Equal(t, 48, snapshots[0].QuantityOnHand)

	require.Len(t, rowErrs, 1)
	assert.Equal(t, 3, rowErrs[0].Line)
	var fe *domain.FieldError
	require.ErrorAs(t, rowErrs[0], &fe)
	assert.Equal(t, "quantity_on_hand", fe.Field)
}

func TestReadEvents(t *testing.T) {
	payload := `[
	  {"id": "evt-1", "event_type": "health_emergency", "title": "Flu outbreak", "severity": "critical"},
	  {"id": "evt-2", "event_type": "major_event", "title": "Stadium concert", "expected_attendance": 12000}
	]`

	events, err := ReadEvents(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventHealthEmergency, events[0].Type)
	require.NotNil(t, events[1].ExpectedAttendance)
	assert.Equal(t, 12000, *events[1].ExpectedAttendance)
}
