// Package sink writes a [scene.Scene] to output formats.
//
// # Formats
//
//   - [RenderJSON]: the primitive list as JSON, optionally with scene-space
//     meshes for viewers that do not tessellate
//   - [RenderCBOR]: the same scene in deterministic CBOR
//   - [RenderSVG]: a static isometric preview; clickable primitives carry
//     data-primitive, data-row and data-column attributes and post clicks
//     back to the host page
//   - [RenderPNG], [RenderPDF]: the SVG preview converted with rsvg-convert
//
// Sinks read the scene only; nothing here changes colors or targets.
//
// [scene.Scene]: github.com/matzehuels/progresstwin/pkg/scene.Scene
package sink
