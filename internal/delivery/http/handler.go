package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
	"github.com/ojayWillow/latvian-price-scraper/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	prices *usecase.PriceService
}

// NewHandler creates a new HTTP handler
func NewHandler(prices *usecase.PriceService) *Handler {
	return &Handler{prices: prices}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "latvian-price-scraper",
		"version": "1.0.0",
	})
}

// ListProducts returns all stored listings in insertion order.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.prices.Listings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// IngestProducts stores a batch of listings, upserting on (source, externalId).
func (h *Handler) IngestProducts(c *gin.Context) {
	var products []domain.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no products in request body"})
		return
	}

	if err := h.prices.Ingest(c.Request.Context(), products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stored": len(products)})
}

// GetComparison matches the stored listings and returns comparison rows.
// Query parameters threshold, policy and anchor override the configured
// defaults for this call only.
func (h *Handler) GetComparison(c *gin.Context) {
	var opts usecase.CompareOptions

	if raw := c.Query("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a number"})
			return
		}
		opts.Threshold = &threshold
	}
	opts.Policy = usecase.MatchPolicy(c.Query("policy"))
	opts.AnchorSource = c.Query("anchor")

	rows, err := h.prices.Compare(c.Request.Context(), opts)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}
