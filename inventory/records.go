package inventory

import (
	"strconv"
	"time"
)

// The records below are pass-throughs of the server's schemas. The API
// serialises decimals as strings and nullable foreign keys as null, so
// prices stay strings here and optional references are pointers.

// Item is an inventory item as served by /inventory/items/.
type Item struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Quantity          int       `json:"quantity"`
	Price             string    `json:"price"`
	Category          *int64    `json:"category"`
	CategoryName      string    `json:"category_name,omitempty"`
	Owner             *int64    `json:"owner,omitempty"`
	SKU               string    `json:"sku,omitempty"`
	Location          string    `json:"location,omitempty"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	DateAdded         time.Time `json:"date_added,omitzero"`
	LastUpdated       time.Time `json:"last_updated,omitzero"`
	IsLowStock        bool      `json:"is_low_stock"`
}

// UnitPrice parses the decimal price string. An unparsable price counts as
// zero, matching how the dashboard renders it.
func (i Item) UnitPrice() float64 {
	price, err := strconv.ParseFloat(i.Price, 64)
	if err != nil {
		return 0
	}
	return price
}

// StockValue is quantity times unit price.
func (i Item) StockValue() float64 {
	return float64(i.Quantity) * i.UnitPrice()
}

// ItemInput is the write payload for creating or replacing an item.
type ItemInput struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Quantity          int    `json:"quantity"`
	Price             string `json:"price"`
	Category          *int64 `json:"category,omitempty"`
	SKU               string `json:"sku,omitempty"`
	Location          string `json:"location,omitempty"`
	LowStockThreshold int    `json:"low_stock_threshold,omitempty"`
}

// Category groups items.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// CategoryInput is the write payload for categories.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Supplier is a supplier record.
type Supplier struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Owner       int64     `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// SupplierInput is the write payload for suppliers.
type SupplierInput struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ItemSupplier links an item to a supplier with sourcing details.
type ItemSupplier struct {
	ID            int64  `json:"id"`
	Item          int64  `json:"item"`
	Supplier      int64  `json:"supplier"`
	SupplierName  string `json:"supplier_name,omitempty"`
	SupplierSKU   string `json:"supplier_sku,omitempty"`
	SupplierPrice string `json:"supplier_price"`
	LeadTimeDays  *int   `json:"lead_time_days"`
	Notes         string `json:"notes,omitempty"`
}

// ItemSupplierInput is the write payload for item-supplier links.
type ItemSupplierInput struct {
	Item          int64  `json:"item"`
	Supplier      int64  `json:"supplier"`
	SupplierSKU   string `json:"supplier_sku,omitempty"`
	SupplierPrice string `json:"supplier_price,omitempty"`
	LeadTimeDays  *int   `json:"lead_time_days,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// LogAction is the kind of change an audit log entry records.
type LogAction string

const (
	LogActionAdd    LogAction = "ADD"
	LogActionRemove LogAction = "REMOVE"
	LogActionUpdate LogAction = "UPDATE"
)

// LogEntry is one audit log record.
type LogEntry struct {
	ID               int64     `json:"id"`
	Item             int64     `json:"item"`
	ItemName         string    `json:"item_name,omitempty"`
	User             *int64    `json:"user"`
	Username         string    `json:"username,omitempty"`
	Action           LogAction `json:"action"`
	QuantityChange   int       `json:"quantity_change"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Timestamp        time.Time `json:"timestamp,omitzero"`
	Notes            string    `json:"notes,omitempty"`
}

// Level is the stock-level view of an item.
type Level struct {
	ItemID            int64     `json:"item_id"`
	ItemName          string    `json:"item_name"`
	CurrentQuantity   int       `json:"current_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	LastUpdated       time.Time `json:"last_updated,omitzero"`
}
