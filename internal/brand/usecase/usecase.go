package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/brand"
	"github.com/solestack/catalog-service/internal/model"
	"github.com/solestack/catalog-service/internal/pkg/cache"
	"github.com/solestack/catalog-service/internal/pkg/logger"
)

const (
	brandListCacheKey = "brands:all"
	brandListCacheTTL = 5 * time.Minute
)

type brandUseCase struct {
	repo   brand.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// NewBrandUseCase builds the brand service. cache may be nil; caching is an
// optimization, never a correctness dependency.
func NewBrandUseCase(repo brand.Repository, cache *cache.RedisClient, log logger.ZapLogger) brand.UseCase {
	return &brandUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *brandUseCase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, brandListCacheKey).Result()
		if err == nil {
			var brands []model.Brand
			if err := json.Unmarshal([]byte(val), &brands); err == nil {
				return brands, nil
			}
		}
	}

	brands, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to fetch brands", err)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(brands); err == nil {
			uc.cache.Client.Set(ctx, brandListCacheKey, data, brandListCacheTTL)
		}
	}

	return brands, nil
}

func (uc *brandUseCase) FindOrCreate(ctx context.Context, name string) (*model.Brand, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperr.New(apperr.KindInvalidRequest, "brand_name is required")
	}

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, false, apperr.Wrap(apperr.KindStorage, "failed to look up brand", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	now := time.Now()
	b := &model.Brand{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: name,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, false, apperr.Wrap(apperr.KindStorage, "failed to create brand", err)
	}

	go uc.invalidateListCache(context.Background())

	uc.logger.Info("brand created", zap.String("brand_id", b.ID), zap.String("name", b.Name))
	return b, true, nil
}

func (uc *brandUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, brandListCacheKey).Err(); err != nil {
		uc.logger.Warn("failed to invalidate brand cache", zap.Error(err))
	}
}
