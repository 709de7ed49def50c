package product

import (
	"context"

	"github.com/solestack/catalog-service/internal/model"
	"github.com/solestack/catalog-service/internal/product/dto"
)

type UseCase interface {
	// CreateProduct ingests one product: resolves the brand, stores the
	// (best-effort resized) image and creates the row. A failed row insert
	// deletes the stored image; the brand row is kept either way.
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	ListByBrand(ctx context.Context, brandID string) ([]model.Product, error)
}
