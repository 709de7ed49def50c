package dto

type CreateProductInput struct {
	ProductName string
	BrandName   string
	// ImageData is the raw upload; size is capped at the HTTP layer.
	ImageData []byte
	// ImageExt and ContentType describe the upload as received. They only
	// matter when the image cannot be re-encoded and is stored verbatim.
	ImageExt    string
	ContentType string
}
