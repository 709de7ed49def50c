package model

type Product struct {
	BaseModel
	Name string `db:"name" json:"name"`
	// BrandID is a non-owning reference; deleting a product never touches
	// the brand row.
	BrandID string `db:"brand_id" json:"brand_id"`
	// BrandName is denormalized so catalog pages render without a join.
	BrandName string `db:"brand_name" json:"brand_name"`
	// ImageURL may be empty (no image), a public URL of a blob in the
	// images bucket, or an external URL.
	ImageURL string `db:"image_url" json:"image_url"`
}
