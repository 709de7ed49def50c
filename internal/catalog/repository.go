package catalog

import (
	"context"

	"github.com/solestack/catalog-service/internal/model"
)

// Repository persists generated-document metadata. Rows are insert-only.
type Repository interface {
	Create(ctx context.Context, doc *model.CatalogDocument) error
	// FindByFilename returns (nil, nil) on a miss.
	FindByFilename(ctx context.Context, filename string) (*model.CatalogDocument, error)
}
