package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

// CSVExporter renders comparison rows to a tabular artifact: one row per
// comparison, one price column per distinct source encountered across all
// rows, then the cheapest-source summary columns.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Write renders rows to w. Sources absent from a given row render as empty
// cells. Column order follows first appearance across the row sequence.
func (e *CSVExporter) Write(w io.Writer, rows []domain.ComparisonRow) error {
	sources := collectSources(rows)

	cw := csv.NewWriter(w)

	header := []string{"Product Name"}
	for _, src := range sources {
		header = append(header, src+" Price")
	}
	header = append(header, "Cheapest Source", "Cheapest Price", "Price Spread")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		bySource := make(map[string]float64, len(row.Prices))
		for _, entry := range row.Prices {
			bySource[entry.Source] = entry.Price
		}

		record := []string{row.ProductName}
		for _, src := range sources {
			if price, ok := bySource[src]; ok {
				record = append(record, formatPrice(price))
			} else {
				record = append(record, "")
			}
		}
		record = append(record,
			row.CheapestSource,
			formatPrice(row.CheapestPrice),
			formatPrice(row.PriceSpread),
		)
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile renders rows to a CSV file at path, creating parent directories.
func (e *CSVExporter) WriteFile(path string, rows []domain.ComparisonRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := e.Write(f, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// collectSources returns the distinct sources across all rows in first-seen
// order, which fixes the price column order.
func collectSources(rows []domain.ComparisonRow) []string {
	var sources []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, entry := range row.Prices {
			if !seen[entry.Source] {
				seen[entry.Source] = true
				sources = append(sources, entry.Source)
			}
		}
	}
	return sources
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
