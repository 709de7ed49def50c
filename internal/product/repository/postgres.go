package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/solestack/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, name, brand_id, brand_name, image_url, created_at, updated_at)
        VALUES (:id, :name, :brand_id, :brand_name, :image_url, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByBrandID(ctx context.Context, brandID string) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT * FROM products WHERE brand_id = $1 ORDER BY created_at`
	err := r.DB.SelectContext(ctx, &products, query, brandID)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	query := `SELECT * FROM products WHERE id = ANY($1)`
	err := r.DB.SelectContext(ctx, &products, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return products, nil
}
