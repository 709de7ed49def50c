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

func (r *PGRepository) Create(ctx context.Context, doc *model.CatalogDocument) error {
	query := `
        INSERT INTO generated_documents (id, filename, download_url, product_ids, created_at, updated_at)
        VALUES (:id, :filename, :download_url, :product_ids, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, doc)
	return err
}

func (r *PGRepository) FindByFilename(ctx context.Context, filename string) (*model.CatalogDocument, error) {
	var doc model.CatalogDocument
	query := `SELECT * FROM generated_documents WHERE filename = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &doc, query, filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
