package reports_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocklens/go-inventory-client/reports"
)

func TestWriteInventoryValueCSV(t *testing.T) {
	lines := []reports.ValueLine{
		{ID: 1, Name: "Bolt, hex", SKU: "B-01", Category: "Fasteners", Quantity: 100, Price: 0.5, Value: 50},
	}

	var buf bytes.Buffer
	require.NoError(t, reports.WriteInventoryValueCSV(&buf, lines))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"ID", "Name", "SKU", "Category", "Quantity", "Price", "Total Value"},
		// The comma in the name survives the round trip.
		{"1", "Bolt, hex", "B-01", "Fasteners", "100", "0.50", "50.00"},
	}, records)
}

func TestWriteLowStockCSV(t *testing.T) {
	lines := []reports.ReorderLine{
		{ID: 2, Name: "Nut", SKU: "N-01", Category: "Fasteners", Quantity: 2, Threshold: 10, Needed: 8},
	}

	var buf bytes.Buffer
	require.NoError(t, reports.WriteLowStockCSV(&buf, lines))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"ID", "Name", "SKU", "Category", "Current Quantity", "Threshold", "Needed"}, records[0])
	require.Equal(t, []string{"2", "Nut", "N-01", "Fasteners", "2", "10", "8"}, records[1])
}

func TestWriteCategorySummaryCSV(t *testing.T) {
	summaries := reports.CategoryRollup(testItems(), testCategories())

	var buf bytes.Buffer
	require.NoError(t, reports.WriteCategorySummaryCSV(&buf, summaries))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, []string{"Category", "Item Count", "Total Value", "Average Price"}, records[0])
	require.Equal(t, "Fasteners", records[2][0])
}
