// Package reports reshapes fetched inventory lists into the dashboard's
// aggregate views: headline metrics, low-stock reorder lines, per-category
// rollups and CSV exports. Everything works on in-memory slices; nothing
// here talks to the network.
package reports

import (
	"sort"

	"github.com/stocklens/go-inventory-client/internal/utils"
	"github.com/stocklens/go-inventory-client/inventory"
)

// uncategorized is the rollup bucket for items without a category.
const uncategorized = "Uncategorized"

// Metrics is the dashboard's headline card data.
type Metrics struct {
	TotalItems      int
	TotalUnits      int
	TotalValue      float64
	AverageValue    float64
	LowStockItems   int
	LowStockPercent float64
	TotalCategories int
}

// Summarize computes the headline metrics over a fetched item list.
func Summarize(items []inventory.Item, categories []inventory.Category) Metrics {
	m := Metrics{
		TotalItems:      len(items),
		TotalCategories: len(categories),
	}
	for _, item := range items {
		m.TotalUnits += item.Quantity
		m.TotalValue += item.StockValue()
		if item.IsLowStock {
			m.LowStockItems++
		}
	}
	if m.TotalItems > 0 {
		m.AverageValue = m.TotalValue / float64(m.TotalItems)
		m.LowStockPercent = float64(m.LowStockItems) / float64(m.TotalItems) * 100
	}
	return m
}

// ValueLine is one row of the inventory-value report.
type ValueLine struct {
	ID       int64
	Name     string
	SKU      string
	Category string
	Quantity int
	Price    float64
	Value    float64
}

// InventoryValue builds the per-item value report in input order.
func InventoryValue(items []inventory.Item, categories []inventory.Category) []ValueLine {
	names := categoryNames(categories)
	lines := make([]ValueLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ValueLine{
			ID:       item.ID,
			Name:     item.Name,
			SKU:      item.SKU,
			Category: names.lookup(item.Category, "-"),
			Quantity: item.Quantity,
			Price:    item.UnitPrice(),
			Value:    item.StockValue(),
		})
	}
	return lines
}

// ReorderLine is one row of the low-stock report. Needed is how far below
// the threshold the item sits.
type ReorderLine struct {
	ID        int64
	Name      string
	SKU       string
	Category  string
	Quantity  int
	Threshold int
	Needed    int
}

// LowStock selects the items the server flags as low stock, in input order.
// The flag is the server's call; no local threshold arithmetic overrides it.
func LowStock(items []inventory.Item, categories []inventory.Category) []ReorderLine {
	names := categoryNames(categories)
	var lines []ReorderLine
	for _, item := range items {
		if !item.IsLowStock {
			continue
		}
		lines = append(lines, ReorderLine{
			ID:        item.ID,
			Name:      item.Name,
			SKU:       item.SKU,
			Category:  names.lookup(item.Category, "-"),
			Quantity:  item.Quantity,
			Threshold: item.LowStockThreshold,
			Needed:    item.LowStockThreshold - item.Quantity,
		})
	}
	return lines
}

// CategorySummary is one row of the per-category rollup. AveragePrice is
// total value over item count, matching the dashboard's report.
type CategorySummary struct {
	Category     string
	ItemCount    int
	TotalValue   float64
	AveragePrice float64
}

// CategoryRollup aggregates items per category, sorted by category name for
// stable output. Items without a category land in the Uncategorized bucket.
func CategoryRollup(items []inventory.Item, categories []inventory.Category) []CategorySummary {
	names := categoryNames(categories)
	buckets := make(map[string]*CategorySummary)
	for _, item := range items {
		name := names.lookup(item.Category, uncategorized)
		bucket, ok := buckets[name]
		if !ok {
			bucket = &CategorySummary{Category: name}
			buckets[name] = bucket
		}
		bucket.ItemCount++
		bucket.TotalValue += item.StockValue()
	}

	summaries := make([]CategorySummary, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.AveragePrice = bucket.TotalValue / float64(bucket.ItemCount)
		summaries = append(summaries, *bucket)
	}
	sort.Slice(summaries, func(a, b int) bool {
		return summaries[a].Category < summaries[b].Category
	})
	return summaries
}

type nameIndex map[int64]string

func categoryNames(categories []inventory.Category) nameIndex {
	names := make(nameIndex, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names
}

func (n nameIndex) lookup(id *int64, fallback string) string {
	if name, ok := n[utils.Value(id)]; ok {
		return name
	}
	return fallback
}
