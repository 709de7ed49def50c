package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solestack/catalog-service/internal/apperr"
	"github.com/solestack/catalog-service/internal/blob"
	"github.com/solestack/catalog-service/internal/blob/memstore"
	"github.com/solestack/catalog-service/internal/catalog/dto"
	"github.com/solestack/catalog-service/internal/model"
	"github.com/solestack/catalog-service/internal/pdfgen"
	"github.com/solestack/catalog-service/internal/pkg/logger"
)

type mockDocRepo struct {
	docs      []model.CatalogDocument
	createErr error
	findErr   error
}

func (m *mockDocRepo) Create(ctx context.Context, doc *model.CatalogDocument) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *mockDocRepo) FindByFilename(ctx context.Context, filename string) (*model.CatalogDocument, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, d := range m.docs {
		if d.Filename == filename {
			doc := d
			return &doc, nil
		}
	}
	return nil, nil
}

type mockProductRepo struct {
	products []model.Product
	findErr  error
}

func (m *mockProductRepo) Create(ctx context.Context, p *model.Product) error {
	m.products = append(m.products, *p)
	return nil
}

func (m *mockProductRepo) FindByBrandID(ctx context.Context, brandID string) ([]model.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []model.Product
	for _, id := range ids {
		for _, p := range m.products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// stubAcquirer resolves refs from a fixed map; anything else is unavailable.
type stubAcquirer struct {
	images map[string][]byte
	calls  []string
}

func (s *stubAcquirer) Acquire(ctx context.Context, ref string) ([]byte, bool) {
	s.calls = append(s.calls, ref)
	img, ok := s.images[ref]
	return img, ok
}

type capturingPublisher struct {
	events []string
}

func (c *capturingPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	c.events = append(c.events, eventType)
	return nil
}

// failingStore refuses writes but delegates everything else.
type failingStore struct {
	blob.Store
}

func (f *failingStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	return errors.New("disk full")
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16)), nil))
	return buf.Bytes()
}

func pageCount(data []byte) int {
	marker := []byte("/Count ")
	i := bytes.Index(data, marker)
	if i < 0 {
		return -1
	}
	n := 0
	for _, c := range data[i+len(marker):] {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func catalogProducts() []model.Product {
	return []model.Product{
		{BaseModel: model.BaseModel{ID: "p1"}, Name: "Runner", BrandName: "TEST_BRAND", ImageURL: "ref-1"},
		{BaseModel: model.BaseModel{ID: "p2"}, Name: "Walker", BrandName: "TEST_BRAND", ImageURL: "ref-2"},
	}
}

func TestCatalogUseCase_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input rejected before any lookup", func(t *testing.T) {
		products := &mockProductRepo{findErr: errors.New("must not be reached")}
		uc := NewCatalogUseCase(&mockDocRepo{}, products, &stubAcquirer{}, pdfgen.NewBuilder(pdfgen.NewComposer()),
			memstore.New("http://localhost:8080"), "pdfs", nil, logger.NewNop())

		_, err := uc.Generate(ctx, &dto.GenerateCatalogInput{})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest))
	})

	t.Run("no resolvable products", func(t *testing.T) {
		uc := NewCatalogUseCase(&mockDocRepo{}, &mockProductRepo{}, &stubAcquirer{}, pdfgen.NewBuilder(pdfgen.NewComposer()),
			memstore.New("http://localhost:8080"), "pdfs", nil, logger.NewNop())

		_, err := uc.Generate(ctx, &dto.GenerateCatalogInput{ProductIDs: []string{"ghost"}})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("product lookup failure", func(t *testing.T) {
		products := &mockProductRepo{findErr: errors.New("db gone")}
		uc := NewCatalogUseCase(&mockDocRepo{}, products, &stubAcquirer{}, pdfgen.NewBuilder(pdfgen.NewComposer()),
			memstore.New("http://localhost:8080"), "pdfs", nil, logger.NewNop())

		_, err := uc.Generate(ctx, &dto.GenerateCatalogInput{ProductIDs: []string{"p1"}})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindStorage))
	})

	t.Run("generates one page per product and persists the document", func(t *testing.T) {
		docs := &mockDocRepo{}
		store := memstore.New("http://localhost:8080")
		acquirer := &stubAcquirer{images: map[string][]byte{
			"ref-1": testJPEG(t),
			"ref-2": testJPEG(t),
		}}
		pub := &capturingPublisher{}
		uc := NewCatalogUseCase(docs, &mockProductRepo{products: catalogProducts()}, acquirer,
			pdfgen.NewBuilder(pdfgen.NewComposer()), store, "pdfs", pub, logger.NewNop())

		out, err := uc.Generate(ctx, &dto.GenerateCatalogInput{ProductIDs: []string{"p1", "p2"}})
		require.NoError(t, err)

		assert.Equal(t, "PDF generated successfully", out.Message)
		assert.NotEmpty(t, out.PDFID)
		assert.Contains(t, out.DownloadURL, "/pdfs/"+out.Filename)
		assert.Equal(t, []string{"ref-1", "ref-2"}, acquirer.calls)
		assert.Equal(t, []string{"catalog.generated"}, pub.events)

		require.Len(t, docs.docs, 1)
		assert.Equal(t, out.Filename, docs.docs[0].Filename)
		assert.Equal(t, []string{"p1", "p2"}, []string(docs.docs[0].ProductIDs))

		data, err := store.Get(ctx, "pdfs", out.Filename)
		require.NoError(t, err)
		assert.Equal(t, 2, pageCount(data))
	})

	t.Run("stale ids are dropped, not fatal", func(t *testing.T) {
		docs := &mockDocRepo{}
		uc := NewCatalogUseCase(docs, &mockProductRepo{products: catalogProducts()}, &stubAcquirer{},
			pdfgen.NewBuilder(pdfgen.NewComposer()), memstore.New("http://localhost:8080"), "pdfs", nil, logger.NewNop())

		_, err := uc.Generate(ctx, &dto.GenerateCatalogInput{ProductIDs: []string{"p1", "ghost", "p2"}})
		require.NoError(t, err)
		require.Len(t, docs.docs, 1)
		assert.Equal(t, []string{"p1", "p2"}, []string(docs.docs[0].ProductIDs))
	})

	t.Run("unavailable images still produce pages", func(t *testing.T) {
		store := memstore.New("http://localhost:8080")
		uc := NewCatalogUseCase(&mockDocRepo{}, &mockProductRepo{products: catalogProducts()},
			&stubAcquirer{}, pdfgen.NewBuilder(pdfgen.NewComposer()), store, "pdfs", nil, logger.NewNop())

		out, err := uc.Generate(ctx, &dto.GenerateCatalogInput{ProductIDs: []string{"p1", "p2"}})
		require.NoError(t, err)

		data, err := store.Get(ctx, "pdfs", out.Filename)
		require.NoError(t, err)
		assert.Equal(t, 2, pageCount(data))
	})

	t.Run("blob write failure", func(t *testing.T) {
		docs := &mockDocRepo{}
		store := &failingStore{Store: memstore.New("http://localhost:8080")}
		uc := NewCatalogUseCase(docs, &mockProductRepo{products: catalogProducts()}, &stubAcquirer{},
			pdfgen.NewBuilder(pdfgen.NewComposer()), store, "pdfs", nil, logger.NewNop())

		_, err := uc.Generate(ctx, &dto.GenerateCatalogInput{ProductIDs: []string{"p1"}})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindStorage))
		assert.Empty(t, docs.docs)
	})

	t.Run("row failure deletes the stored document", func(t *testing.T) {
		store := memstore.New("http://localhost:8080")
		docs := &mockDocRepo{createErr: errors.New("insert failed")}
		uc := NewCatalogUseCase(docs, &mockProductRepo{products: catalogProducts()}, &stubAcquirer{},
			pdfgen.NewBuilder(pdfgen.NewComposer()), store, "pdfs", nil, logger.NewNop())

		_, err := uc.Generate(ctx, &dto.GenerateCatalogInput{ProductIDs: []string{"p1"}})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindStorage))
		assert.Equal(t, 0, store.Len())
	})
}

func TestCatalogUseCase_Download(t *testing.T) {
	ctx := context.Background()

	store := memstore.New("http://localhost:8080")
	require.NoError(t, store.Put(ctx, "pdfs", "catalog-1.pdf", []byte("%PDF-1.3"), "application/pdf"))
	require.NoError(t, store.Put(ctx, "pdfs", "orphan.pdf", []byte("%PDF-1.3"), "application/pdf"))
	docs := &mockDocRepo{docs: []model.CatalogDocument{
		{BaseModel: model.BaseModel{ID: "doc-1"}, Filename: "catalog-1.pdf"},
		{BaseModel: model.BaseModel{ID: "doc-2"}, Filename: "gone.pdf"},
	}}
	uc := NewCatalogUseCase(docs, &mockProductRepo{}, &stubAcquirer{},
		pdfgen.NewBuilder(pdfgen.NewComposer()), store, "pdfs", nil, logger.NewNop())

	t.Run("returns stored bytes", func(t *testing.T) {
		data, err := uc.Download(ctx, "catalog-1.pdf")
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.3"), data)
	})

	t.Run("unknown filename", func(t *testing.T) {
		_, err := uc.Download(ctx, "nope.pdf")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("blob without metadata row is not served", func(t *testing.T) {
		_, err := uc.Download(ctx, "orphan.pdf")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("metadata row without blob", func(t *testing.T) {
		_, err := uc.Download(ctx, "gone.pdf")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("metadata lookup failure", func(t *testing.T) {
		failing := NewCatalogUseCase(&mockDocRepo{findErr: errors.New("db gone")}, &mockProductRepo{},
			&stubAcquirer{}, pdfgen.NewBuilder(pdfgen.NewComposer()), store, "pdfs", nil, logger.NewNop())
		_, err := failing.Download(ctx, "catalog-1.pdf")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindStorage))
	})

	t.Run("rejects traversal attempts", func(t *testing.T) {
		for _, name := range []string{"", "../secret.pdf", "a/b.pdf", `a\b.pdf`, "..pdf.."} {
			_, err := uc.Download(ctx, name)
			require.Error(t, err, name)
			assert.True(t, apperr.IsKind(err, apperr.KindInvalidRequest), name)
		}
	})
}
