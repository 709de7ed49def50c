package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Builder assembles a multi-page catalog document. Exactly one page per
// input, in input order; a product with broken image data still gets its
// page, degraded to the placeholder.
type Builder struct {
	composer *Composer
}

func NewBuilder(composer *Composer) *Builder {
	return &Builder{composer: composer}
}

func (b *Builder) Build(pages []PageData) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)

	for i, page := range pages {
		doc.AddPage()
		b.composer.ComposePage(doc, i, page)
	}

	if doc.Err() {
		return nil, fmt.Errorf("compose document: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}
