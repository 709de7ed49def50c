package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/pkg/logger"
	"github.com/solestack/catalog-service/internal/pkg/web"
	"github.com/solestack/catalog-service/internal/product"
	"github.com/solestack/catalog-service/internal/product/dto"
)

// maxUploadBytes caps a product image upload at 10 MiB.
const maxUploadBytes = 10 << 20

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productResponse struct {
	ID        string `json:"_id"`
	Name      string `json:"product_name"`
	BrandName string `json:"brand_name"`
	ImageURL  string `json:"product_image"`
}

// Create handles POST /products: multipart with product_name, brand_name
// and a product_image file field.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "Product image is required"))
		return
	}

	file, header, err := r.FormFile("product_image")
	if err != nil {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "Product image is required"))
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "Only image files are allowed"))
		return
	}

	// Read one byte past the cap so an oversized file is rejected rather
	// than truncated to a corrupt image.
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || len(data) == 0 {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "Image file is empty or corrupted"))
		return
	}
	if len(data) > maxUploadBytes {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "Image file exceeds the 10MB size limit"))
		return
	}

	input := &dto.CreateProductInput{
		ProductName: r.FormValue("product_name"),
		BrandName:   r.FormValue("brand_name"),
		ImageData:   data,
		ImageExt:    strings.ToLower(filepath.Ext(header.Filename)),
		ContentType: header.Header.Get("Content-Type"),
	}

	p, err := h.uc.CreateProduct(r.Context(), input)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindInvalidRequest) {
			h.logger.Error("failed to create product", zap.Error(err))
		}
		web.Error(w, err)
		return
	}

	web.JSON(w, http.StatusCreated, struct {
		Message string          `json:"message"`
		Product productResponse `json:"product"`
	}{
		Message: "Product created successfully",
		Product: productResponse{
			ID:        p.ID,
			Name:      p.Name,
			BrandName: p.BrandName,
			ImageURL:  p.ImageURL,
		},
	})
}
