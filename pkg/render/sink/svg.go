package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/scene"
	"github.com/matzehuels/progresstwin/pkg/solid"
)

const primitiveInteractionCSS = `
    .primitive[data-primitive] { cursor: pointer; }
    .primitive[data-primitive]:hover path { stroke: #111; stroke-width: 1.5; }
    .primitive path { stroke: rgba(0,0,0,0.35); stroke-width: 0.5; stroke-linejoin: round; }
    .label { font-family: sans-serif; font-size: 12px; text-anchor: middle; }
    .legend text { font-family: sans-serif; font-size: 11px; }`

// The host page receives {type, primitive, row, column} via postMessage;
// when the root carries data-click-url the click is also POSTed there.
const primitiveInteractionJS = `
    (function() {
      var root = document.querySelector('svg[data-structure]');
      var url = root ? root.getAttribute('data-click-url') : null;
      document.querySelectorAll('.primitive[data-primitive]').forEach(function(el) {
        el.addEventListener('click', function() {
          var msg = {type: 'progresstwin:click', primitive: el.dataset.primitive, row: el.dataset.row, column: el.dataset.column};
          if (window.parent) { window.parent.postMessage(msg, '*'); }
          if (url) {
            fetch(url, {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify({primitive_id: msg.primitive})});
          }
        });
      });
    })();`

// DefaultPixelsPerMeter is the preview scale.
const DefaultPixelsPerMeter = 12.0

const (
	svgMargin    = 24.0
	legendRowGap = 16.0
	legendHeight = 28.0
)

var (
	isoCos = math.Cos(math.Pi / 6)
	isoSin = math.Sin(math.Pi / 6)
	// light is a unit vector from above and in front of the viewer.
	light = solid.V3(0.3, 1, 0.6).Scale(1 / solid.V3(0.3, 1, 0.6).Len())
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	ppm      float64
	legend   bool
	labels   bool
	clickURL string
	script   bool
}

// WithPixelsPerMeter sets the drawing scale.
func WithPixelsPerMeter(ppm float64) SVGOption {
	return func(r *svgRenderer) {
		if ppm > 0 {
			r.ppm = ppm
		}
	}
}

// WithSVGLegend draws the status legend under the preview.
func WithSVGLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithoutLabels omits text markers.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithClickURL makes clicks POST {"primitive_id": ...} to url.
func WithClickURL(url string) SVGOption { return func(r *svgRenderer) { r.clickURL = url } }

// WithoutScript omits the interaction script, for static conversion to
// PNG and PDF.
func WithoutScript() SVGOption { return func(r *svgRenderer) { r.script = false } }

// project maps scene space to isometric screen space (y down). The viewer
// looks from +X+Y+Z, so larger depth is nearer.
func project(v solid.Vec3) (x, y float64) {
	return (v.X - v.Z) * isoCos, (v.X+v.Z)*isoSin - v.Y
}

func depth(v solid.Vec3) float64 { return v.X + v.Y + v.Z }

type drawnFace struct {
	path   string
	fill   palette.Color
	stroke palette.Color
	depth  float64
}

// edgeMix darkens face outlines toward the label ink.
const edgeMix = 0.4

type drawnPrimitive struct {
	p     scene.Primitive
	faces []drawnFace
	depth float64
}

// RenderSVG draws sc as an isometric preview using the painter's
// algorithm: primitives far to near, faces within a primitive far to near.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{ppm: DefaultPixelsPerMeter, labels: true, script: true}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, maxX, maxY := r.extent(sc)
	width := maxX - minX + 2*svgMargin
	height := maxY - minY + 2*svgMargin
	offX, offY := svgMargin-minX, svgMargin-minY
	if r.legend {
		height += legendHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" data-structure="%s"`,
		width, height, width, height, escapeXML(sc.StructureID))
	if r.clickURL != "" {
		fmt.Fprintf(&buf, ` data-click-url="%s"`, escapeXML(r.clickURL))
	}
	buf.WriteString(">\n")
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", primitiveInteractionCSS)

	prims := r.drawables(sc, offX, offY)
	for _, d := range prims {
		renderPrimitive(&buf, d)
	}
	if r.labels {
		for _, p := range sc.Primitives {
			if p.Kind != scene.KindLabel || p.Label == "" {
				continue
			}
			x, y := r.screen(p.Position, offX, offY)
			fmt.Fprintf(&buf, `  <text class="label" x="%.1f" y="%.1f" fill="%s">%s</text>`+"\n",
				x, y, p.Color, escapeXML(p.Label))
		}
	}
	if r.legend {
		renderLegend(&buf, svgMargin, height-legendHeight+legendRowGap/2)
	}
	if r.script {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", primitiveInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) screen(v solid.Vec3, offX, offY float64) (float64, float64) {
	x, y := project(v)
	return x*r.ppm + offX, y*r.ppm + offY
}

// extent returns the projected bounding rectangle in pixels.
func (r svgRenderer) extent(sc *scene.Scene) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(v solid.Vec3) {
		x, y := project(v)
		x, y = x*r.ppm, y*r.ppm
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, p := range sc.Primitives {
		if p.Solid() == nil {
			grow(p.Position)
			continue
		}
		for _, v := range p.Mesh().Vertices {
			grow(v)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

func (r svgRenderer) drawables(sc *scene.Scene, offX, offY float64) []drawnPrimitive {
	out := make([]drawnPrimitive, 0, len(sc.Primitives))
	for _, p := range sc.Primitives {
		if p.Solid() == nil {
			continue
		}
		m := p.Mesh()
		d := drawnPrimitive{p: p, depth: depth(m.Bounds().Center())}
		for _, f := range m.Faces {
			shade := 0.7 + 0.35*math.Abs(m.Normal(f).Dot(light))
			fill := palette.Shade(p.Color, shade)
			d.faces = append(d.faces, drawnFace{
				path:   r.facePath(m, f, offX, offY),
				fill:   fill,
				stroke: palette.Mix(fill, palette.Label, edgeMix),
				depth:  depth(m.Centroid(f)),
			})
		}
		slices.SortStableFunc(d.faces, func(a, b drawnFace) int { return cmp.Compare(a.depth, b.depth) })
		out = append(out, d)
	}
	slices.SortStableFunc(out, func(a, b drawnPrimitive) int { return cmp.Compare(a.depth, b.depth) })
	return out
}

func (r svgRenderer) facePath(m solid.Mesh, f solid.Face, offX, offY float64) string {
	var sb strings.Builder
	for _, loop := range f.Loops {
		for i, idx := range loop {
			x, y := r.screen(m.Vertices[idx], offX, offY)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f %.1f", x, y)
			} else {
				fmt.Fprintf(&sb, "L%.1f %.1f", x, y)
			}
		}
		sb.WriteString("Z")
	}
	return sb.String()
}

func renderPrimitive(buf *bytes.Buffer, d drawnPrimitive) {
	p := d.p
	fmt.Fprintf(buf, `  <g class="primitive" id="%s" data-feature="%s"`, escapeXML(p.ID), escapeXML(p.Feature))
	if p.Target != nil {
		fmt.Fprintf(buf, ` data-primitive="%s" data-row="%s" data-column="%s" data-status="%s"`,
			escapeXML(p.ID), escapeXML(p.Target.RowID), escapeXML(p.Target.ColumnID), matrix.ParseStatus(string(p.Target.Cell.Status)))
	}
	if p.Opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%.2f"`, p.Opacity)
	}
	buf.WriteString(">\n")
	if p.Title != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", escapeXML(p.Title))
	}
	for _, f := range d.faces {
		fmt.Fprintf(buf, `    <path d="%s" fill="%s" stroke="%s" stroke-width="0.5" stroke-linejoin="round" fill-rule="evenodd"/>`+"\n",
			f.path, f.fill, f.stroke)
	}
	buf.WriteString("  </g>\n")
}

func renderLegend(buf *bytes.Buffer, x, y float64) {
	buf.WriteString(`  <g class="legend">` + "\n")
	for _, e := range palette.Legend() {
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="10" height="10" fill="%s"/>`+"\n", x, y-9, e.Color)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f">%s</text>`+"\n", x+14, y, e.Status)
		x += 14 + 8*float64(len(e.Status)) + 16
	}
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
