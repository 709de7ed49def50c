package dto

type GenerateCatalogInput struct {
	ProductIDs []string
}

type GenerateCatalogOutput struct {
	Message     string
	PDFID       string
	Filename    string
	DownloadURL string
}
