package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/catalog"
	"github.com/solestack/catalog-service/internal/catalog/dto"
	"github.com/solestack/catalog-service/internal/pkg/logger"
	"github.com/solestack/catalog-service/internal/pkg/web"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

type generateRequest struct {
	ProductIDs []string `json:"product_ids"`
}

type generateResponse struct {
	Message     string `json:"message"`
	PDFID       string `json:"pdf_id"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

// Generate handles POST /pdf/generate.
func (h *CatalogHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, apperr.New(apperr.KindInvalidRequest, "product_ids array is required"))
		return
	}

	out, err := h.uc.Generate(r.Context(), &dto.GenerateCatalogInput{ProductIDs: req.ProductIDs})
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindInvalidRequest, apperr.KindNotFound:
		default:
			h.logger.Error("failed to generate catalog", zap.Error(err))
		}
		web.Error(w, err)
		return
	}

	web.JSON(w, http.StatusOK, generateResponse{
		Message:     out.Message,
		PDFID:       out.PDFID,
		Filename:    out.Filename,
		DownloadURL: out.DownloadURL,
	})
}

// Download handles GET /pdf/{filename}.
func (h *CatalogHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	data, err := h.uc.Download(r.Context(), filename)
	if err != nil {
		if apperr.IsKind(err, apperr.KindStorage) {
			h.logger.Error("failed to read catalog pdf", zap.Error(err))
		}
		web.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
