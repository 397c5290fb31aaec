package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

func openTestStore(t *testing.T) *ProductStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProductStore_UpsertAndAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	products := []domain.Product{
		{Source: "Depo", ExternalID: "100", Name: "Cordless Drill 18V", Price: 89.99, URL: "https://online.depo.lv/product/100"},
		{Source: "K-Senukai", ExternalID: "200", Name: "Cordless Drill 18V Pro", Price: 91.50, URL: "https://www.ksenukai.lv/p/200"},
		{Source: "Kursi", ExternalID: "300", Name: "Impact Wrench", Price: 45.00, URL: "https://www.kursi.lv/product/300"},
	}
	for _, p := range products {
		require.NoError(t, s.Upsert(ctx, p))
	}

	got, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, products, got, "All should return listings in insertion order")

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestProductStore_UpsertReplacesOnKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := domain.Product{Source: "Depo", ExternalID: "100", Name: "Cordless Drill 18V", Price: 99.99}
	second := domain.Product{Source: "Kursi", ExternalID: "300", Name: "Impact Wrench", Price: 45.00}
	require.NoError(t, s.Upsert(ctx, first))
	require.NoError(t, s.Upsert(ctx, second))

	// Re-scrape of the Depo listing with a new price.
	first.Price = 89.99
	require.NoError(t, s.Upsert(ctx, first))

	got, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Latest values win but the original position is kept.
	assert.Equal(t, "Depo", got[0].Source)
	assert.Equal(t, 89.99, got[0].Price)
	assert.Equal(t, "Kursi", got[1].Source)
}

func TestProductStore_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
