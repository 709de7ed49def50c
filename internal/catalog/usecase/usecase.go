package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/blob"
	"github.com/solestack/catalog-service/internal/catalog"
	"github.com/solestack/catalog-service/internal/catalog/dto"
	"github.com/solestack/catalog-service/internal/model"
	"github.com/solestack/catalog-service/internal/pdfgen"
	"github.com/solestack/catalog-service/internal/pkg/logger"
	"github.com/solestack/catalog-service/internal/product"
)

// ImageAcquirer resolves an image reference into bytes, or reports it
// unavailable. Failures never surface as errors here.
type ImageAcquirer interface {
	Acquire(ctx context.Context, ref string) ([]byte, bool)
}

// EventPublisher is the broker-facing slice of this usecase; best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

type catalogUseCase struct {
	docs      catalog.Repository
	products  product.Repository
	acquirer  ImageAcquirer
	builder   *pdfgen.Builder
	store     blob.Store
	bucket    string
	publisher EventPublisher
	logger    logger.ZapLogger
}

// NewCatalogUseCase builds the generation service. publisher may be nil.
func NewCatalogUseCase(
	docs catalog.Repository,
	products product.Repository,
	acquirer ImageAcquirer,
	builder *pdfgen.Builder,
	store blob.Store,
	documentsBucket string,
	publisher EventPublisher,
	log logger.ZapLogger,
) catalog.UseCase {
	return &catalogUseCase{
		docs:      docs,
		products:  products,
		acquirer:  acquirer,
		builder:   builder,
		store:     store,
		bucket:    documentsBucket,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *catalogUseCase) Generate(ctx context.Context, input *dto.GenerateCatalogInput) (*dto.GenerateCatalogOutput, error) {
	if len(input.ProductIDs) == 0 {
		return nil, apperr.New(apperr.KindInvalidRequest, "Product IDs array is required")
	}

	resolved, err := uc.products.FindByIDs(ctx, input.ProductIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to fetch products", err)
	}
	if len(resolved) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "No products found")
	}
	// Ids that did not resolve are dropped, not rejected. Lenient on
	// purpose: a catalog of the products that still exist beats a hard
	// failure when one id went stale.
	if len(resolved) < len(input.ProductIDs) {
		uc.logger.Info("partial product resolution",
			zap.Int("requested", len(input.ProductIDs)),
			zap.Int("resolved", len(resolved)))
	}

	// Sequential acquisition keeps page order trivially equal to resolved
	// order and keeps failure isolation simple.
	pages := make([]pdfgen.PageData, len(resolved))
	productIDs := make([]string, len(resolved))
	for i, p := range resolved {
		img, ok := uc.acquirer.Acquire(ctx, p.ImageURL)
		if !ok {
			img = nil
		}
		pages[i] = pdfgen.PageData{
			BrandName:   p.BrandName,
			ProductName: p.Name,
			Image:       img,
		}
		productIDs[i] = p.ID
	}

	docBytes, err := uc.builder.Build(pages)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to generate PDF", err)
	}

	filename := blob.DocumentKey()
	if err := uc.store.Put(ctx, uc.bucket, filename, docBytes, "application/pdf"); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to save PDF", err)
	}
	downloadURL := uc.store.PublicURL(uc.bucket, filename)

	now := time.Now()
	doc := &model.CatalogDocument{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Filename:    filename,
		DownloadURL: downloadURL,
		ProductIDs:  productIDs,
	}
	if err := uc.docs.Create(ctx, doc); err != nil {
		if delErr := uc.store.Delete(ctx, uc.bucket, filename); delErr != nil {
			uc.logger.Error("failed to delete orphaned document blob",
				zap.String("filename", filename), zap.Error(delErr))
		}
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to save PDF", err)
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, "catalog.generated", doc.ID, doc); err != nil {
			uc.logger.Warn("failed to publish catalog.generated", zap.Error(err))
		}
	}

	uc.logger.Info("catalog generated",
		zap.String("pdf_id", doc.ID),
		zap.String("filename", filename),
		zap.Int("pages", len(pages)))

	return &dto.GenerateCatalogOutput{
		Message:     "PDF generated successfully",
		PDFID:       doc.ID,
		Filename:    filename,
		DownloadURL: downloadURL,
	}, nil
}

func (uc *catalogUseCase) Download(ctx context.Context, filename string) ([]byte, error) {
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return nil, apperr.New(apperr.KindInvalidRequest, "Invalid filename")
	}

	// Only documents with a metadata row are downloadable; a blob without
	// one is an orphan from a failed generation.
	doc, err := uc.docs.FindByFilename(ctx, filename)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to read PDF", err)
	}
	if doc == nil {
		return nil, apperr.New(apperr.KindNotFound, "PDF not found")
	}

	data, err := uc.store.Get(ctx, uc.bucket, filename)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "PDF not found")
		}
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to read PDF", err)
	}
	return data, nil
}
