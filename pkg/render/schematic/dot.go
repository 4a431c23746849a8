package schematic

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/render"
)

// Options configures schematic rendering.
type Options struct {
	// Detailed adds foundation type, direction and offset to node labels.
	Detailed bool
	// Column colors each node by the status of this column's cell.
	// Empty leaves nodes white.
	Column string
	// Language selects the structure name shown as the graph label.
	Language string
}

// ToDOT converts a structure's rows to Graphviz DOT, left to right in
// chainage order.
func ToDOT(st matrix.Structure, rows []matrix.Row, offsets chainage.Offsets, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, fontsize=12];\n")
	buf.WriteString("  nodesep=0.3;\n")
	if name := st.Name.Get(opts.Language); name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", name)
	}
	buf.WriteString("\n")

	ordered := chainage.Sequence(rows, offsets)
	for _, r := range ordered {
		fmt.Fprintf(&buf, "  %q [%s];\n", r.ID, strings.Join(fmtAttrs(r, offsets[r.ID], opts), ", "))
	}

	axes := groupAxes(ordered, offsets)
	buf.WriteString("\n")
	for _, ax := range axes {
		if len(ax.ids) > 1 {
			fmt.Fprintf(&buf, "  { rank=same; %s }\n", quoteAll(ax.ids))
		}
	}
	for i := 1; i < len(axes); i++ {
		prev, cur := axes[i-1], axes[i]
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", prev.ids[0], cur.ids[0],
			strconv.FormatFloat(cur.offset-prev.offset, 'f', -1, 64)+" m")
	}

	buf.WriteString("}\n")
	return buf.String()
}

type axis struct {
	offset float64
	ids    []string
}

func groupAxes(ordered []matrix.Row, offsets chainage.Offsets) []axis {
	var out []axis
	for _, r := range ordered {
		off := offsets[r.ID]
		if n := len(out); n > 0 && out[n-1].offset == off {
			out[n-1].ids = append(out[n-1].ids, r.ID)
			continue
		}
		out = append(out, axis{offset: off, ids: []string{r.ID}})
	}
	return out
}

func quoteAll(ids []string) string {
	q := make([]string, len(ids))
	for i, id := range ids {
		q[i] = strconv.Quote(id)
	}
	return strings.Join(q, "; ") + ";"
}

func fmtLabel(r matrix.Row, offset float64, detailed bool) string {
	name := r.Location
	if name == "" {
		name = r.ID
	}
	if !detailed {
		return name
	}
	parts := []string{name}
	if r.FoundationType != "" {
		parts = append(parts, string(r.FoundationType))
	}
	if r.Direction != "" {
		parts = append(parts, string(r.Direction))
	}
	parts = append(parts, "+"+strconv.FormatFloat(offset, 'f', -1, 64)+" m")
	return strings.Join(parts, "\n")
}

func fmtAttrs(r matrix.Row, offset float64, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(r, offset, opts.Detailed))}
	if opts.Column != "" {
		cell := r.Cell(opts.Column)
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", string(palette.Of(cell.Status))))
		if cell.Code != "" && cell.Code != matrix.Placeholder().Code {
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", cell.Code))
		}
	}
	if r.IsAbutment() {
		attrs = append(attrs, "shape=box3d")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root with a unitless one so
// the drawing scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
