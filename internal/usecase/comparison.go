package usecase

import (
	"fmt"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

// ComparisonBuilder converts match groups into comparison rows. Pure
// transformation, no side effects.
type ComparisonBuilder struct{}

// NewComparisonBuilder creates a comparison builder.
func NewComparisonBuilder() *ComparisonBuilder {
	return &ComparisonBuilder{}
}

// Build derives one row per group. A group without any listing signals a
// matcher defect and fails the whole call; no partial result is returned.
func (b *ComparisonBuilder) Build(groups []domain.MatchGroup) ([]domain.ComparisonRow, error) {
	rows := make([]domain.ComparisonRow, 0, len(groups))

	for i, g := range groups {
		if g.Anchor == (domain.Product{}) && len(g.Matches) == 0 {
			return nil, fmt.Errorf("%w: empty match group at index %d", domain.ErrInvalidInput, i)
		}

		members := g.Products()
		row := domain.ComparisonRow{
			ProductName: g.Anchor.Name,
			Prices:      make([]domain.PriceEntry, 0, len(members)),
		}

		// Strict < keeps the first source reaching the minimum on price ties.
		minPrice, maxPrice := members[0].Price, members[0].Price
		cheapest := members[0]
		for _, p := range members {
			row.Prices = append(row.Prices, domain.PriceEntry{Source: p.Source, Price: p.Price, URL: p.URL})
			if p.Price < minPrice {
				minPrice = p.Price
				cheapest = p
			}
			if p.Price > maxPrice {
				maxPrice = p.Price
			}
		}

		row.CheapestSource = cheapest.Source
		row.CheapestPrice = minPrice
		row.PriceSpread = maxPrice - minPrice
		rows = append(rows, row)
	}

	return rows, nil
}
