package product

import (
	"context"

	"github.com/solestack/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByBrandID(ctx context.Context, brandID string) ([]model.Product, error)
	// FindByIDs returns the products whose ids are in the set. The result
	// is subset-tolerant (unknown ids are skipped) and its order does not
	// follow the input.
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}
