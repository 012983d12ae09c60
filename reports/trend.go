package reports

import (
	"time"

	"github.com/stocklens/go-inventory-client/inventory"
)

// TrendPoint is one month's stock total.
type TrendPoint struct {
	Month string
	Stock int
}

// Trend is the dashboard's twelve-month stock chart data plus the running
// value totals, all keyed by each item's last_updated timestamp.
type Trend struct {
	Points            []TrendPoint
	CurrentYearValue  float64
	CurrentMonthValue float64
}

// MonthlyTrend buckets items into the twelve months of now's year by their
// last update. Items never updated (zero timestamp) are left out.
func MonthlyTrend(items []inventory.Item, now time.Time) Trend {
	year := now.Year()
	month := now.Month()

	trend := Trend{Points: make([]TrendPoint, 12)}
	for i := range trend.Points {
		trend.Points[i].Month = time.Month(i + 1).String()
	}

	for _, item := range items {
		updated := item.LastUpdated
		if updated.IsZero() || updated.Year() != year {
			continue
		}
		trend.Points[int(updated.Month())-1].Stock += item.Quantity
		trend.CurrentYearValue += item.StockValue()
		if updated.Month() == month {
			trend.CurrentMonthValue += item.StockValue()
		}
	}
	return trend
}
