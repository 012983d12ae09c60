package reports

import (
	"sort"
	"strings"

	"github.com/stocklens/go-inventory-client/inventory"
)

// Query narrows an item list the way the inventory page does: free-text
// search over name and SKU, an optional category, an optional low-stock
// switch. Zero values match everything.
type Query struct {
	Search       string
	CategoryID   int64
	LowStockOnly bool
}

// Filter returns the items matching q, preserving input order.
func Filter(items []inventory.Item, q Query) []inventory.Item {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	var out []inventory.Item
	for _, item := range items {
		if q.CategoryID != 0 && (item.Category == nil || *item.Category != q.CategoryID) {
			continue
		}
		if q.LowStockOnly && !item.IsLowStock {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.SKU), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortField selects the column an item listing is ordered by.
type SortField string

const (
	SortByName     SortField = "name"
	SortByQuantity SortField = "quantity"
	SortByPrice    SortField = "price"
	SortByUpdated  SortField = "updated"
)

// SortItems returns a sorted copy of items. The sort is stable so equal
// keys keep their fetched order.
func SortItems(items []inventory.Item, field SortField, descending bool) []inventory.Item {
	sorted := make([]inventory.Item, len(items))
	copy(sorted, items)

	less := func(a, b inventory.Item) bool {
		switch field {
		case SortByQuantity:
			return a.Quantity < b.Quantity
		case SortByPrice:
			return a.UnitPrice() < b.UnitPrice()
		case SortByUpdated:
			return a.LastUpdated.Before(b.LastUpdated)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
