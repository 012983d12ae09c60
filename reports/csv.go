package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// CSV exports mirror the dashboard's report downloads: one writer per
// report type, headers matching the on-screen columns.

func WriteInventoryValueCSV(w io.Writer, lines []ValueLine) error {
	records := [][]string{{"ID", "Name", "SKU", "Category", "Quantity", "Price", "Total Value"}}
	for _, line := range lines {
		records = append(records, []string{
			strconv.FormatInt(line.ID, 10),
			line.Name,
			line.SKU,
			line.Category,
			strconv.Itoa(line.Quantity),
			formatAmount(line.Price),
			formatAmount(line.Value),
		})
	}
	return writeAll(w, records)
}

func WriteLowStockCSV(w io.Writer, lines []ReorderLine) error {
	records := [][]string{{"ID", "Name", "SKU", "Category", "Current Quantity", "Threshold", "Needed"}}
	for _, line := range lines {
		records = append(records, []string{
			strconv.FormatInt(line.ID, 10),
			line.Name,
			line.SKU,
			line.Category,
			strconv.Itoa(line.Quantity),
			strconv.Itoa(line.Threshold),
			strconv.Itoa(line.Needed),
		})
	}
	return writeAll(w, records)
}

func WriteCategorySummaryCSV(w io.Writer, summaries []CategorySummary) error {
	records := [][]string{{"Category", "Item Count", "Total Value", "Average Price"}}
	for _, summary := range summaries {
		records = append(records, []string{
			summary.Category,
			strconv.Itoa(summary.ItemCount),
			formatAmount(summary.TotalValue),
			formatAmount(summary.AveragePrice),
		})
	}
	return writeAll(w, records)
}

func writeAll(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return errors.Wrap(err, "[writeAll] write csv")
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
