package domain

import "context"

// ProductRepository defines the interface for product persistence. Upsert
// keys on (source, externalId): a later record supersedes an earlier one.
// All returns listings in insertion order; the matcher's tie-breaks depend
// on that order being stable.
type ProductRepository interface {
	Upsert(ctx context.Context, p Product) error
	All(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int, error)
}
