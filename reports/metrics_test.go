package reports_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocklens/go-inventory-client/internal/utils"
	"github.com/stocklens/go-inventory-client/inventory"
	"github.com/stocklens/go-inventory-client/reports"
)

func testCategories() []inventory.Category {
	return []inventory.Category{
		{ID: 1, Name: "Fasteners"},
		{ID: 2, Name: "Adhesives"},
	}
}

func testItems() []inventory.Item {
	return []inventory.Item{
		{ID: 1, Name: "Bolt", SKU: "B-01", Quantity: 100, Price: "0.50", Category: utils.Ptr[int64](1)},
		{ID: 2, Name: "Nut", SKU: "N-01", Quantity: 2, Price: "0.25", Category: utils.Ptr[int64](1), LowStockThreshold: 10, IsLowStock: true},
		{ID: 3, Name: "Glue", SKU: "G-01", Quantity: 8, Price: "3.00", Category: utils.Ptr[int64](2)},
		{ID: 4, Name: "Mystery", Quantity: 1, Price: "10.00"},
	}
}

func TestSummarize(t *testing.T) {
	m := reports.Summarize(testItems(), testCategories())

	require.Equal(t, 4, m.TotalItems)
	require.Equal(t, 111, m.TotalUnits)
	require.InDelta(t, 100*0.50+2*0.25+8*3.00+1*10.00, m.TotalValue, 0.001)
	require.Equal(t, 1, m.LowStockItems)
	require.InDelta(t, 25.0, m.LowStockPercent, 0.001)
	require.Equal(t, 2, m.TotalCategories)
	require.InDelta(t, m.TotalValue/4, m.AverageValue, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	m := reports.Summarize(nil, nil)
	require.Zero(t, m.TotalItems)
	require.Zero(t, m.TotalValue)
	require.Zero(t, m.LowStockPercent)
}

func TestInventoryValueResolvesCategoryNames(t *testing.T) {
	lines := reports.InventoryValue(testItems(), testCategories())

	require.Len(t, lines, 4)
	require.Equal(t, "Fasteners", lines[0].Category)
	require.InDelta(t, 50.0, lines[0].Value, 0.001)
	// Items without a category show a dash, like the dashboard table.
	require.Equal(t, "-", lines[3].Category)
}

func TestLowStockRespectsServerFlag(t *testing.T) {
	lines := reports.LowStock(testItems(), testCategories())

	require.Len(t, lines, 1)
	require.Equal(t, "Nut", lines[0].Name)
	require.Equal(t, 10, lines[0].Threshold)
	require.Equal(t, 8, lines[0].Needed)
}

func TestCategoryRollup(t *testing.T) {
	summaries := reports.CategoryRollup(testItems(), testCategories())

	require.Len(t, summaries, 3)
	// Sorted by category name, Uncategorized included.
	require.Equal(t, "Adhesives", summaries[0].Category)
	require.Equal(t, "Fasteners", summaries[1].Category)
	require.Equal(t, "Uncategorized", summaries[2].Category)

	require.Equal(t, 2, summaries[1].ItemCount)
	require.InDelta(t, 50.5, summaries[1].TotalValue, 0.001)
	require.InDelta(t, 25.25, summaries[1].AveragePrice, 0.001)
}

func TestUnparsablePriceCountsAsZero(t *testing.T) {
	items := []inventory.Item{{ID: 1, Name: "Odd", Quantity: 3, Price: "n/a"}}

	m := reports.Summarize(items, nil)
	require.Zero(t, m.TotalValue)
}
