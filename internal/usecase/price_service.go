package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
	"github.com/ojayWillow/latvian-price-scraper/internal/infrastructure/cache"
)

// PriceServiceConfig holds configuration for the price comparison service.
// A zero CacheTTL disables result caching.
type PriceServiceConfig struct {
	Threshold          float64
	Policy             MatchPolicy
	AnchorSource       string
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// PriceService ties storage, matching and comparison together: it loads the
// listings currently on file, groups them and derives comparison rows.
type PriceService struct {
	repo      domain.ProductRepository
	builder   *ComparisonBuilder
	cache     *cache.ComparisonCache
	threshold float64
	policy    MatchPolicy
	anchor    string
	debug     bool
}

// NewPriceService creates a price service with the given repository and
// configuration. A zero threshold falls back to 0.6.
func NewPriceService(repo domain.ProductRepository, cfg PriceServiceConfig) *PriceService {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = 0.6
	}
	policy := cfg.Policy
	if policy == "" {
		policy = PolicySymmetric
	}

	var resultCache *cache.ComparisonCache
	if cfg.CacheTTL > 0 {
		resultCache = cache.NewComparisonCache(cfg.CacheTTL)
	}

	return &PriceService{
		repo:      repo,
		builder:   NewComparisonBuilder(),
		cache:     resultCache,
		threshold: threshold,
		policy:    policy,
		anchor:    cfg.AnchorSource,
		debug:     cfg.EnableDebugLogging,
	}
}

// CompareOptions overrides the configured matching parameters for one call.
// Zero values keep the configured defaults.
type CompareOptions struct {
	Threshold    *float64
	Policy       MatchPolicy
	AnchorSource string
}

// Compare loads all stored listings and produces comparison rows.
func (s *PriceService) Compare(ctx context.Context, opts CompareOptions) ([]domain.ComparisonRow, error) {
	threshold := s.threshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	policy := s.policy
	if opts.Policy != "" {
		policy = opts.Policy
	}
	anchor := s.anchor
	if opts.AnchorSource != "" {
		anchor = opts.AnchorSource
	}

	key := cache.Key(threshold, string(policy), anchor)
	if s.cache != nil {
		if rows, ok := s.cache.Get(key); ok {
			return rows, nil
		}
	}

	products, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading listings: %w", err)
	}

	matcher := NewMatcher(MatcherConfig{Policy: policy, AnchorSource: anchor})
	groups, err := matcher.Match(products, threshold)
	if err != nil {
		return nil, err
	}

	if s.debug {
		log.Printf("[compare] %d listings -> %d groups (policy=%s threshold=%.2f)",
			len(products), len(groups), policy, threshold)
	}

	rows, err := s.builder.Build(groups)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, rows)
	}
	return rows, nil
}

// Ingest stores a batch of listings, upserting on (source, externalId).
func (s *PriceService) Ingest(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		if err := s.repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("storing %s/%s: %w", p.Source, p.ExternalID, err)
		}
	}
	if s.cache != nil {
		s.cache.Invalidate()
	}
	return nil
}

// Listings returns all stored listings in insertion order.
func (s *PriceService) Listings(ctx context.Context) ([]domain.Product, error) {
	return s.repo.All(ctx)
}
