package model

import "github.com/lib/pq"

// CatalogDocument records a generated catalog PDF. The payload itself lives
// in the documents bucket under Filename; the row is metadata only and is
// never mutated after insert.
type CatalogDocument struct {
	BaseModel
	Filename    string         `db:"filename" json:"filename"`
	DownloadURL string         `db:"download_url" json:"download_url"`
	ProductIDs  pq.StringArray `db:"product_ids" json:"product_ids"`
}
