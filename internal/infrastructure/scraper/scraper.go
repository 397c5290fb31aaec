package scraper

import (
	"context"
	"fmt"
	"log"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

// Source is implemented by each retailer catalog. A source fetches its own
// page format and maps it into Product records.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]domain.Product, error)
}

// Aggregator coordinates calls to multiple sources, collecting their listings
// in source order.
type Aggregator struct {
	sources []Source
}

// NewAggregator creates a new Aggregator with the given sources.
func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// FetchAll fetches listings from every source in order. A failing source is
// logged and skipped; the error is non-nil only when every source failed.
func (a *Aggregator) FetchAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	failed := 0

	for _, src := range a.sources {
		log.Printf("[scraper] fetching from %s", src.Name())
		products, err := src.FetchAll(ctx)
		if err != nil {
			log.Printf("[scraper] source %s error: %v", src.Name(), err)
			failed++
			continue
		}
		log.Printf("[scraper] %s: %d listings", src.Name(), len(products))
		out = append(out, products...)
	}

	if len(a.sources) > 0 && failed == len(a.sources) {
		return nil, fmt.Errorf("%w: all %d sources failed", domain.ErrSourceUnavailable, failed)
	}
	return out, nil
}
