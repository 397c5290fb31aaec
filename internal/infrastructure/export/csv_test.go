package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

func comparisonFixture() []domain.ComparisonRow {
	return []domain.ComparisonRow{
		{
			ProductName: "Cordless Drill 18V",
			Prices: []domain.PriceEntry{
				{Source: "Depo", Price: 89.99},
				{Source: "K-Senukai", Price: 91.50},
			},
			CheapestSource: "Depo",
			CheapestPrice:  89.99,
			PriceSpread:    1.51,
		},
		{
			ProductName: "Impact Wrench",
			Prices: []domain.PriceEntry{
				{Source: "Kursi", Price: 45.00},
			},
			CheapestSource: "Kursi",
			CheapestPrice:  45.00,
			PriceSpread:    0,
		},
	}
}

func TestCSVExporterWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Write(&buf, comparisonFixture()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Product Name", "Depo Price", "K-Senukai Price", "Kursi Price",
		"Cheapest Source", "Cheapest Price", "Price Spread",
	}, records[0], "one price column per source in first-seen order")

	assert.Equal(t, []string{
		"Cordless Drill 18V", "89.99", "91.50", "", "Depo", "89.99", "1.51",
	}, records[1])

	assert.Equal(t, []string{
		"Impact Wrench", "", "", "45.00", "Kursi", "45.00", "0.00",
	}, records[2], "sources absent from a row render as empty cells")
}

func TestCSVExporterWriteNoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Write(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
	assert.Equal(t, []string{"Product Name", "Cheapest Source", "Cheapest Price", "Price Spread"}, records[0])
}

func TestCSVExporterWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "price_comparison.csv")
	require.NoError(t, NewCSVExporter().WriteFile(path, comparisonFixture()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cordless Drill 18V")
}
