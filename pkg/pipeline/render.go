package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/render/schematic"
	"github.com/matzehuels/progresstwin/pkg/render/sink"
	"github.com/matzehuels/progresstwin/pkg/scene"
)

// Render generates output artifacts in the requested formats. The
// structure and rows are only read by the schematic format.
func Render(ctx context.Context, st matrix.Structure, rows []matrix.Row, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(sc, buildJSONOptions(opts)...)
		case FormatCBOR:
			data, err = sink.RenderCBOR(sc)
		case FormatSVG:
			data = sink.RenderSVG(sc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, sc, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, sc, sink.WithPDFSVGOptions(svgOpts...))
		case FormatSchematic:
			dot := schematic.ToDOT(st, rows, sc.Offsets, schematic.Options{
				Detailed: true,
				Column:   opts.StatusColumn,
				Language: sc.Language,
			})
			data, err = schematic.RenderSVG(ctx, dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	var out []sink.JSONOption
	if opts.Meshes {
		out = append(out, sink.WithMeshes())
	}
	if opts.Legend {
		out = append(out, sink.WithLegend())
	}
	return out
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Legend {
		out = append(out, sink.WithSVGLegend())
	}
	if opts.ClickURL != "" {
		out = append(out, sink.WithClickURL(opts.ClickURL))
	}
	return out
}
