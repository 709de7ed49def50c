package brand

import (
	"context"

	"github.com/solestack/catalog-service/internal/model"
)

type UseCase interface {
	// ListBrands returns all brands ordered by name.
	ListBrands(ctx context.Context) ([]model.Brand, error)
	// FindOrCreate resolves a brand by case-insensitive name match,
	// creating it on first reference. The boolean reports whether a row
	// was created.
	FindOrCreate(ctx context.Context, name string) (*model.Brand, bool, error)
}
