package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/blob"
	"github.com/solestack/catalog-service/internal/brand"
	"github.com/solestack/catalog-service/internal/imaging"
	"github.com/solestack/catalog-service/internal/model"
	"github.com/solestack/catalog-service/internal/pkg/logger"
	"github.com/solestack/catalog-service/internal/product"
	"github.com/solestack/catalog-service/internal/product/dto"
)

// EventPublisher is the broker-facing slice of this usecase. Publishing is
// best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

type productUseCase struct {
	repo      product.Repository
	brands    brand.UseCase
	resizer   *imaging.Resizer
	store     blob.Store
	bucket    string
	publisher EventPublisher
	logger    logger.ZapLogger
}

// NewProductUseCase builds the ingestion service. publisher may be nil.
func NewProductUseCase(
	repo product.Repository,
	brands brand.UseCase,
	resizer *imaging.Resizer,
	store blob.Store,
	imagesBucket string,
	publisher EventPublisher,
	log logger.ZapLogger,
) product.UseCase {
	return &productUseCase{
		repo:      repo,
		brands:    brands,
		resizer:   resizer,
		store:     store,
		bucket:    imagesBucket,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	productName := strings.TrimSpace(input.ProductName)
	brandName := strings.TrimSpace(input.BrandName)
	if productName == "" || brandName == "" {
		return nil, apperr.New(apperr.KindInvalidRequest, "product_name and brand_name are required")
	}
	if len(input.ImageData) == 0 {
		return nil, apperr.New(apperr.KindInvalidRequest, "Product image is required")
	}

	// The brand row is never rolled back on later failure: keeping it is
	// what makes a retry reuse the same brand.
	b, _, err := uc.brands.FindOrCreate(ctx, brandName)
	if err != nil {
		return nil, err
	}

	// Resizing is an optimization. A corrupt-but-storable image still gets
	// ingested with its original bytes, keyed and typed as it was uploaded.
	imageData, err := uc.resizer.Resize(input.ImageData)
	ext, contentType := ".jpg", "image/jpeg"
	if err != nil {
		uc.logger.Warn("image resize failed, storing original bytes", zap.Error(err))
		imageData = input.ImageData
		if input.ImageExt != "" {
			ext = input.ImageExt
		}
		if input.ContentType != "" {
			contentType = input.ContentType
		}
	}

	key := blob.ImageKey(ext)
	if err := uc.store.Put(ctx, uc.bucket, key, imageData, contentType); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to upload image", err)
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      productName,
		BrandID:   b.ID,
		BrandName: b.Name,
		ImageURL:  uc.store.PublicURL(uc.bucket, key),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		// Compensating delete keeps the bucket free of orphans. Its own
		// failure is logged, not escalated.
		if delErr := uc.store.Delete(ctx, uc.bucket, key); delErr != nil {
			uc.logger.Error("failed to delete orphaned image blob",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to create product", err)
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, "product.created", p.ID, p); err != nil {
			uc.logger.Warn("failed to publish product.created", zap.Error(err))
		}
	}

	uc.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("brand_id", b.ID),
		zap.String("image_key", key))
	return p, nil
}

func (uc *productUseCase) ListByBrand(ctx context.Context, brandID string) ([]model.Product, error) {
	products, err := uc.repo.FindByBrandID(ctx, brandID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to fetch products", err)
	}
	return products, nil
}
