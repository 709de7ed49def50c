package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/brand"
	"github.com/solestack/catalog-service/internal/pkg/logger"
	"github.com/solestack/catalog-service/internal/pkg/web"
	"github.com/solestack/catalog-service/internal/product"
)

// brandResponse is the wire shape the mobile client expects. Internally
// there is a single canonical Brand model; the _id/brand_name names live
// only here.
type brandResponse struct {
	ID   string `json:"_id"`
	Name string `json:"brand_name"`
}

type createBrandRequest struct {
	BrandName string `json:"brand_name"`
	// Name is a legacy alias some clients still send.
	Name string `json:"name"`
}

type BrandHandler struct {
	uc        brand.UseCase
	productUC product.UseCase
	logger    logger.ZapLogger
}

func NewBrandHandler(uc brand.UseCase, productUC product.UseCase, log logger.ZapLogger) *BrandHandler {
	return &BrandHandler{
		uc:        uc,
		productUC: productUC,
		logger:    log,
	}
}

// List handles GET /brands.
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.uc.ListBrands(r.Context())
	if err != nil {
		h.logger.Error("failed to list brands", zap.Error(err))
		web.Error(w, err)
		return
	}

	out := make([]brandResponse, len(brands))
	for i, b := range brands {
		out[i] = brandResponse{ID: b.ID, Name: b.Name}
	}
	web.JSON(w, http.StatusOK, out)
}

// Create handles POST /brands. Creating an already-known name (any casing)
// returns the existing brand.
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "brand_name or name is required"))
		return
	}
	name := req.BrandName
	if name == "" {
		name = req.Name
	}

	b, _, err := h.uc.FindOrCreate(r.Context(), name)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindInvalidRequest) {
			h.logger.Error("failed to create brand", zap.Error(err))
		}
		web.Error(w, err)
		return
	}

	web.JSON(w, http.StatusCreated, struct {
		Success bool          `json:"success"`
		Brand   brandResponse `json:"brand"`
	}{
		Success: true,
		Brand:   brandResponse{ID: b.ID, Name: b.Name},
	})
}

// ListProducts handles GET /brands/{id}/products.
func (h *BrandHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "Brand ID required"))
		return
	}

	products, err := h.productUC.ListByBrand(r.Context(), brandID)
	if err != nil {
		h.logger.Error("failed to list brand products", zap.Error(err), zap.String("brand_id", brandID))
		web.Error(w, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = productResponse{
			ID:        p.ID,
			Name:      p.Name,
			BrandName: p.BrandName,
			ImageURL:  p.ImageURL,
		}
	}
	web.JSON(w, http.StatusOK, out)
}

// productResponse mirrors the client's product wire shape.
type productResponse struct {
	ID        string `json:"_id"`
	Name      string `json:"product_name"`
	BrandName string `json:"brand_name"`
	ImageURL  string `json:"product_image"`
}
