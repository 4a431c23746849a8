// Package render turns synthesized scenes into files.
//
// # Overview
//
// Scenes are renderer-independent (see [scene.Scene]). This package and its
// subpackages provide the outputs the CLI and HTTP API serve:
//
//   - Format conversion (SVG to PDF/PNG) in this package
//   - Scene sinks (JSON, CBOR, isometric SVG preview) in [sink]
//   - A Graphviz schematic of structure axes in [schematic]
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(sc)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [scene.Scene]: github.com/matzehuels/progresstwin/pkg/scene.Scene
// [sink]: github.com/matzehuels/progresstwin/pkg/render/sink
// [schematic]: github.com/matzehuels/progresstwin/pkg/render/schematic
package render
