// Package pdfgen renders catalog documents: one fixed-layout A4 page per
// product. It performs no I/O; inputs are display fields plus optional
// image bytes, output is the drawn document.
package pdfgen

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	_ "golang.org/x/image/webp"
)

// A4 portrait in points, 50pt margins on all sides.
const (
	pageWidth  = 595.0
	pageHeight = 842.0
	margin     = 50.0

	contentWidth  = pageWidth - 2*margin
	contentHeight = pageHeight - 2*margin

	// The image region occupies 70% of the content height and starts
	// below the two text bands.
	imageAreaTop    = margin + 100
	imageAreaHeight = contentHeight * 0.70

	titleFontSize       = 20.0
	subtitleFontSize    = 18.0
	placeholderFontSize = 14.0

	placeholderText = "Image not available"
)

// PageData is one product's renderable view. Image is nil when acquisition
// already failed; a decode failure at draw time is handled the same way.
type PageData struct {
	BrandName   string
	ProductName string
	Image       []byte
}

type Composer struct{}

func NewComposer() *Composer {
	return &Composer{}
}

// ComposePage draws one page onto doc. The page must already have been
// added by the caller. Missing names render as empty strings; a missing or
// undecodable image renders the textual placeholder, never a blank region.
func (c *Composer) ComposePage(doc *gofpdf.Fpdf, pageNum int, page PageData) {
	tr := doc.UnicodeTranslatorFromDescriptor("")

	// Canvases do not default to white.
	doc.SetFillColor(255, 255, 255)
	doc.Rect(0, 0, pageWidth, pageHeight, "F")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", titleFontSize)
	doc.SetXY(margin, margin+20)
	doc.CellFormat(contentWidth, titleFontSize+4, tr("Brand: "+page.BrandName), "", 0, "C", false, 0, "")

	doc.SetFont("Helvetica", "", subtitleFontSize)
	doc.SetXY(margin, margin+60)
	doc.CellFormat(contentWidth, subtitleFontSize+4, tr("Name: "+page.ProductName), "", 0, "C", false, 0, "")

	if page.Image == nil || !c.drawImage(doc, pageNum, page.Image) {
		c.drawPlaceholder(doc, tr)
	}
}

// drawImage fits the image inside the image region preserving aspect ratio,
// centered on both axes. Returns false when the bytes cannot be used, so
// the caller can fall back to the placeholder.
func (c *Composer) drawImage(doc *gofpdf.Fpdf, pageNum int, data []byte) bool {
	data, imageType, w, h, ok := normalizeImage(data)
	if !ok {
		return false
	}

	scale := contentWidth / w
	if s := imageAreaHeight / h; s < scale {
		scale = s
	}
	drawW := w * scale
	drawH := h * scale
	x := margin + (contentWidth-drawW)/2
	y := imageAreaTop + (imageAreaHeight-drawH)/2

	name := fmt.Sprintf("page%d", pageNum)
	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if doc.Err() {
		doc.ClearError()
		return false
	}

	doc.ImageOptions(name, x, y, drawW, drawH, false, opts, 0, "")
	if doc.Err() {
		doc.ClearError()
		return false
	}
	return true
}

func (c *Composer) drawPlaceholder(doc *gofpdf.Fpdf, tr func(string) string) {
	doc.SetFont("Helvetica", "", placeholderFontSize)
	doc.SetXY(margin, imageAreaTop+(imageAreaHeight-placeholderFontSize)/2)
	doc.CellFormat(contentWidth, placeholderFontSize+4, tr(placeholderText), "", 0, "C", false, 0, "")
}

// normalizeImage reports the embeddable bytes, the gofpdf type string and
// the pixel dimensions. Formats gofpdf cannot embed directly (webp mainly)
// are re-encoded to JPEG.
func normalizeImage(data []byte) ([]byte, string, float64, float64, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, false
	}

	switch format {
	case "jpeg":
		return data, "JPG", float64(cfg.Width), float64(cfg.Height), true
	case "png":
		return data, "PNG", float64(cfg.Width), float64(cfg.Height), true
	case "gif":
		return data, "GIF", float64(cfg.Width), float64(cfg.Height), true
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, false
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, "", 0, 0, false
	}
	b := img.Bounds()
	return buf.Bytes(), "JPG", float64(b.Dx()), float64(b.Dy()), true
}
