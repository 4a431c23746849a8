package sink

import (
	"context"

	"github.com/matzehuels/progresstwin/pkg/render"
	"github.com/matzehuels/progresstwin/pkg/scene"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the scene preview as PDF via SVG conversion.
func RenderPDF(ctx context.Context, sc *scene.Scene, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(sc, append(r.svgOpts, WithoutScript())...)
	return render.ToPDF(ctx, svg)
}
