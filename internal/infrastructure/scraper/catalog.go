package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// StoreConfig describes how to crawl one retailer catalog.
type StoreConfig struct {
	Name          string
	BaseURL       string
	CategoryPaths []string
	// ProductPattern matches product links on category pages; capture group 1
	// is the source-assigned product id.
	ProductPattern *regexp.Regexp
}

// DefaultStores returns the crawl configuration for the five supported
// Latvian building-material retailers.
func DefaultStores() []StoreConfig {
	return []StoreConfig{
		{
			Name:           "Depo",
			BaseURL:        "https://online.depo.lv",
			CategoryPaths:  []string{"/products/7481"},
			ProductPattern: regexp.MustCompile(`/product/([^/?#]+)`),
		},
		{
			Name:           "K-Senukai",
			BaseURL:        "https://www.ksenukai.lv",
			CategoryPaths:  []string{"/c/buvmateriali/1g3"},
			ProductPattern: regexp.MustCompile(`/p/([^/?#]+)`),
		},
		{
			Name:           "Kursi",
			BaseURL:        "https://www.kursi.lv",
			CategoryPaths:  []string{"/lv/buvmateriali"},
			ProductPattern: regexp.MustCompile(`/product/([^/?#]+)`),
		},
		{
			Name:           "Buvserviss",
			BaseURL:        "https://www.buvserviss.lv",
			CategoryPaths:  []string{"/buvmateriali"},
			ProductPattern: regexp.MustCompile(`/product/([^/?#]+)`),
		},
		{
			Name:           "Cenuklubs",
			BaseURL:        "https://cenuklubs.lv",
			CategoryPaths:  []string{"/buvmateriali-un-apdares-materiali"},
			ProductPattern: regexp.MustCompile(`/prece/([^/?#]+)`),
		},
	}
}

// Options tunes catalog crawling.
type Options struct {
	Limit   int           // max listings per source, 0 means 20
	Timeout time.Duration // per-request timeout, 0 means 30s
	Delay   time.Duration // politeness delay between requests
}

// CatalogSource crawls one retailer: category pages for product links, then
// each product page for name and price.
type CatalogSource struct {
	cfg  StoreConfig
	opts Options
}

// NewCatalogSource creates a source for one store configuration.
func NewCatalogSource(cfg StoreConfig, opts Options) *CatalogSource {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &CatalogSource{cfg: cfg, opts: opts}
}

// Name returns the retailer name used as the listing source.
func (s *CatalogSource) Name() string {
	return s.cfg.Name
}

// FetchAll crawls the configured categories and returns the extracted
// listings. Product pages missing a name or price are skipped, not errors.
func (s *CatalogSource) FetchAll(ctx context.Context) ([]domain.Product, error) {
	urls, err := s.collectProductURLs(ctx)
	if err != nil {
		return nil, err
	}
	if len(urls) > s.opts.Limit {
		urls = urls[:s.opts.Limit]
	}
	return s.scrapeProducts(ctx, urls)
}

func (s *CatalogSource) newCollector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.opts.Timeout)
	if s.opts.Delay > 0 {
		_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: s.opts.Delay})
	}
	return c
}

// collectProductURLs visits the category pages and gathers unique product
// links in first-seen order.
func (s *CatalogSource) collectProductURLs(ctx context.Context) ([]string, error) {
	c := s.newCollector(ctx)

	var urls []string
	seen := make(map[string]bool)
	var crawlErr error

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" || !s.cfg.ProductPattern.MatchString(link) {
			return
		}
		if !strings.HasPrefix(link, s.cfg.BaseURL) {
			return
		}
		if !seen[link] {
			seen[link] = true
			urls = append(urls, link)
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		crawlErr = err
	})

	visited := 0
	for _, path := range s.cfg.CategoryPaths {
		if err := c.Visit(s.cfg.BaseURL + path); err != nil {
			crawlErr = err
			continue
		}
		visited++
	}
	c.Wait()

	if visited == 0 || (len(urls) == 0 && crawlErr != nil) {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, s.cfg.Name, crawlErr)
	}
	return urls, nil
}

// scrapeProducts visits each product page, taking the first h1 as the name
// and the first euro amount on the page as the price.
func (s *CatalogSource) scrapeProducts(ctx context.Context, urls []string) ([]domain.Product, error) {
	c := s.newCollector(ctx)

	var products []domain.Product

	c.OnResponse(func(r *colly.Response) {
		if price, ok := extractPrice(string(r.Body)); ok {
			r.Ctx.Put("price", strconv.FormatFloat(price, 'f', -1, 64))
		}
	})
	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if e.Response.Ctx.Get("name") == "" {
			e.Response.Ctx.Put("name", strings.TrimSpace(e.Text))
		}
	})
	c.OnScraped(func(r *colly.Response) {
		name := r.Ctx.Get("name")
		priceText := r.Ctx.Get("price")
		if name == "" || priceText == "" {
			return
		}
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil {
			return
		}
		link := r.Request.URL.String()
		m := s.cfg.ProductPattern.FindStringSubmatch(link)
		if m == nil {
			return
		}
		products = append(products, domain.Product{
			Source:     s.cfg.Name,
			ExternalID: m[1],
			Name:       name,
			Price:      price,
			URL:        link,
		})
	})

	for _, u := range urls {
		if err := c.Visit(u); err != nil {
			continue
		}
	}
	c.Wait()

	return products, nil
}
