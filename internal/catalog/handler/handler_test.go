package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/catalog/dto"
	"github.com/solestack/catalog-service/internal/pkg/logger"
)

type mockCatalogUC struct {
	generateOut *dto.GenerateCatalogOutput
	generateErr error
	gotInput    *dto.GenerateCatalogInput

	downloadData []byte
	downloadErr  error
}

func (m *mockCatalogUC) Generate(ctx context.Context, input *dto.GenerateCatalogInput) (*dto.GenerateCatalogOutput, error) {
	m.gotInput = input
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.generateOut, nil
}

func (m *mockCatalogUC) Download(ctx context.Context, filename string) ([]byte, error) {
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	return m.downloadData, nil
}

func newMux(uc *mockCatalogUC) *http.ServeMux {
	h := NewCatalogHandler(uc, logger.NewNop())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pdf/generate", h.Generate)
	mux.HandleFunc("GET /pdf/{filename}", h.Download)
	return mux
}

func TestCatalogHandler_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockCatalogUC{generateOut: &dto.GenerateCatalogOutput{
			Message:     "PDF generated successfully",
			PDFID:       "doc-1",
			Filename:    "catalog-1.pdf",
			DownloadURL: "http://localhost:8080/pdfs/catalog-1.pdf",
		}}
		mux := newMux(uc)

		body := bytes.NewBufferString(`{"product_ids":["p1","p2"]}`)
		req := httptest.NewRequest(http.MethodPost, "/pdf/generate", body)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, uc.gotInput)
		assert.Equal(t, []string{"p1", "p2"}, uc.gotInput.ProductIDs)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PDF generated successfully", resp["message"])
		assert.Equal(t, "doc-1", resp["pdf_id"])
		assert.Equal(t, "catalog-1.pdf", resp["filename"])
		assert.Equal(t, "http://localhost:8080/pdfs/catalog-1.pdf", resp["download_url"])
	})

	t.Run("malformed body", func(t *testing.T) {
		mux := newMux(&mockCatalogUC{})
		req := httptest.NewRequest(http.MethodPost, "/pdf/generate", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing ids maps to 400", func(t *testing.T) {
		uc := &mockCatalogUC{generateErr: apperr.New(apperr.KindInvalidRequest, "Product IDs array is required")}
		mux := newMux(uc)
		req := httptest.NewRequest(http.MethodPost, "/pdf/generate", strings.NewReader(`{"product_ids":[]}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Product IDs array is required", resp["error"])
	})

	t.Run("unknown products map to 404", func(t *testing.T) {
		uc := &mockCatalogUC{generateErr: apperr.New(apperr.KindNotFound, "No products found")}
		mux := newMux(uc)
		req := httptest.NewRequest(http.MethodPost, "/pdf/generate", strings.NewReader(`{"product_ids":["ghost"]}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("storage failures map to 500", func(t *testing.T) {
		uc := &mockCatalogUC{generateErr: apperr.New(apperr.KindStorage, "Failed to save PDF")}
		mux := newMux(uc)
		req := httptest.NewRequest(http.MethodPost, "/pdf/generate", strings.NewReader(`{"product_ids":["p1"]}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCatalogHandler_Download(t *testing.T) {
	t.Run("streams the document", func(t *testing.T) {
		uc := &mockCatalogUC{downloadData: []byte("%PDF-1.3 fake")}
		mux := newMux(uc)
		req := httptest.NewRequest(http.MethodGet, "/pdf/catalog-1.pdf", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="catalog-1.pdf"`)
		assert.Equal(t, []byte("%PDF-1.3 fake"), rec.Body.Bytes())
	})

	t.Run("missing document maps to 404", func(t *testing.T) {
		uc := &mockCatalogUC{downloadErr: apperr.New(apperr.KindNotFound, "PDF not found")}
		mux := newMux(uc)
		req := httptest.NewRequest(http.MethodGet, "/pdf/nope.pdf", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PDF not found", resp["error"])
	})
}
