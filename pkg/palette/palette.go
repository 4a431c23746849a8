// Package palette maps completion statuses to display colors.
//
// [Of] is the Status-Color Mapper: a total, pure lookup that never fails.
// Anything it does not recognize is drawn in the EMPTY color. The package
// also carries the fixed colors of non-status features (bearing hardware,
// barrel joints) and small shading helpers used by the renderers.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// Color is a CSS hex color ("#rrggbb").
type Color string

// Status colors.
const (
	Empty     Color = "#b0b7c3"
	Preparing Color = "#5b9bd5"
	Pending   Color = "#f2b134"
	Signed    Color = "#3fa34d"
	Rejected  Color = "#d64545"
)

// Fixed colors of features that do not track a status.
const (
	Pedestal     Color = "#8c8c8c"
	BearingBlock Color = "#3a3a3a"
	Joint        Color = "#262626"
	Label        Color = "#1f2933"
)

var byStatus = map[matrix.Status]Color{
	matrix.StatusEmpty:     Empty,
	matrix.StatusPreparing: Preparing,
	matrix.StatusPending:   Pending,
	matrix.StatusSigned:    Signed,
	matrix.StatusRejected:  Rejected,
}

// Of returns the display color of a status. Unknown and blank statuses get
// the EMPTY color.
func Of(s matrix.Status) Color {
	if c, ok := byStatus[matrix.ParseStatus(string(s))]; ok {
		return c
	}
	return Empty
}

// Entry is one line of a status legend.
type Entry struct {
	Status matrix.Status
	Color  Color
}

// Legend lists every status with its color in lifecycle order.
func Legend() []Entry {
	out := make([]Entry, 0, len(matrix.Statuses))
	for _, s := range matrix.Statuses {
		out = append(out, Entry{Status: s, Color: Of(s)})
	}
	return out
}

// Shade darkens (factor < 1) or lightens (factor > 1) a color in HCL space,
// keeping its hue. Unparseable colors are returned unchanged.
func Shade(c Color, factor float64) Color {
	if factor == 1 {
		return c
	}
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	h, chroma, l := col.Hcl()
	l = min(max(l*factor, 0), 1)
	return Color(colorful.Hcl(h, chroma, l).Clamped().Hex())
}

// Mix blends c toward o by t in [0, 1] using Lab interpolation.
func Mix(c, o Color, t float64) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		if _, err := colorful.Hex(string(o)); err != nil {
			return c
		}
		return o
	}
	a, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	b, err := colorful.Hex(string(o))
	if err != nil {
		return c
	}
	return Color(a.BlendLab(b, t).Clamped().Hex())
}
