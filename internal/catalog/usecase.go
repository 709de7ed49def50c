package catalog

import (
	"context"

	"github.com/solestack/catalog-service/internal/catalog/dto"
)

type UseCase interface {
	// Generate renders a catalog PDF for the given product ids, persists
	// it to the documents bucket and records its metadata. Ids that do not
	// resolve are skipped; zero resolved products is NotFound.
	Generate(ctx context.Context, input *dto.GenerateCatalogInput) (*dto.GenerateCatalogOutput, error)
	// Download returns the stored document bytes by filename.
	Download(ctx context.Context, filename string) ([]byte, error)
}
