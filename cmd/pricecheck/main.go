package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/ojayWillow/latvian-price-scraper/config"
	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
	"github.com/ojayWillow/latvian-price-scraper/internal/infrastructure/export"
	"github.com/ojayWillow/latvian-price-scraper/internal/infrastructure/scraper"
	"github.com/ojayWillow/latvian-price-scraper/internal/infrastructure/store"
	"github.com/ojayWillow/latvian-price-scraper/internal/usecase"
)

// pricecheck runs the pipeline stages: scrape listings from the configured
// stores, match them across sources and export the price comparison.
func main() {
	var (
		doScrape = flag.Bool("scrape", false, "scrape all stores")
		doMatch  = flag.Bool("match", false, "match products across stores")
		doExport = flag.Bool("export", false, "export price comparison CSV")
		doFull   = flag.Bool("full", false, "run all steps")
	)
	flag.Parse()

	if !*doScrape && !*doMatch && !*doExport && !*doFull {
		flag.Usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	productStore, err := store.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("failed to open product store: %v", err)
	}
	defer productStore.Close()

	ctx := context.Background()

	if *doScrape || *doFull {
		if err := scrapeAll(ctx, cfg, productStore); err != nil {
			log.Fatalf("scrape failed: %v", err)
		}
	}

	if *doMatch || *doExport || *doFull {
		rows, err := compare(ctx, cfg, productStore)
		if err != nil {
			log.Fatalf("match failed: %v", err)
		}
		log.Printf("[match] %d comparison rows", len(rows))

		if *doExport || *doFull {
			if err := export.NewCSVExporter().WriteFile(cfg.Export.Path, rows); err != nil {
				log.Fatalf("export failed: %v", err)
			}
			log.Printf("[export] wrote %s", cfg.Export.Path)
		}
	}
}

func scrapeAll(ctx context.Context, cfg *config.Config, productStore *store.ProductStore) error {
	opts := scraper.Options{
		Limit:   cfg.Scrape.PerSourceLimit,
		Timeout: cfg.Scrape.RequestTimeout,
	}
	if cfg.Scrape.RequestsPerSec > 0 {
		opts.Delay = time.Duration(float64(time.Second) / cfg.Scrape.RequestsPerSec)
	}

	sources := make([]scraper.Source, 0, len(scraper.DefaultStores()))
	for _, sc := range scraper.DefaultStores() {
		sources = append(sources, scraper.NewCatalogSource(sc, opts))
	}

	products, err := scraper.NewAggregator(sources...).FetchAll(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		if err := productStore.Upsert(ctx, p); err != nil {
			return err
		}
	}

	total, err := productStore.Count(ctx)
	if err != nil {
		return err
	}
	log.Printf("[scrape] stored %d listings, %d total on file", len(products), total)
	return nil
}

func compare(ctx context.Context, cfg *config.Config, productStore *store.ProductStore) ([]domain.ComparisonRow, error) {
	svc := usecase.NewPriceService(productStore, usecase.PriceServiceConfig{
		Threshold:          cfg.Matching.Threshold,
		Policy:             usecase.MatchPolicy(cfg.Matching.Policy),
		AnchorSource:       cfg.Matching.AnchorSource,
		EnableDebugLogging: cfg.Matching.Debug,
	})
	return svc.Compare(ctx, usecase.CompareOptions{})
}
