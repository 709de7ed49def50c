package brand

import (
	"context"

	"github.com/solestack/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, brand *model.Brand) error
	// FindAll returns all brands ordered by name.
	FindAll(ctx context.Context) ([]model.Brand, error)
	// FindByName matches case-insensitively; (nil, nil) on a miss.
	FindByName(ctx context.Context, name string) (*model.Brand, error)
}
