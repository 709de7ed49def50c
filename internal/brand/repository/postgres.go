package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/solestack/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, b *model.Brand) error {
	query := `
        INSERT INTO brands (id, name, created_at, updated_at)
        VALUES (:id, :name, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, b)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Brand, error) {
	brands := []model.Brand{}
	query := `SELECT * FROM brands ORDER BY name`
	err := r.DB.SelectContext(ctx, &brands, query)
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Brand, error) {
	var b model.Brand
	// No uniqueness constraint backs this; the case-insensitive match at
	// creation time is the only dedup mechanism.
	query := `SELECT * FROM brands WHERE LOWER(name) = LOWER($1) LIMIT 1`
	err := r.DB.GetContext(ctx, &b, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
