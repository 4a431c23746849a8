package scene

import (
	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/solid"
)

// Kind is the shape of a primitive.
type Kind string

const (
	KindBox       Kind = "box"
	KindCylinder  Kind = "cylinder"
	KindFrustum   Kind = "frustum"
	KindExtrusion Kind = "extrusion"
	KindLabel     Kind = "label"
)

// Primitive is one drawable element. Its solid is centered on the local
// origin and placed by Rotation (radians, applied X then Y then Z) and
// Position. Exactly one shape field is set, matching Kind; labels carry
// none.
type Primitive struct {
	ID       string     `json:"id" cbor:"id"`
	Kind     Kind       `json:"kind" cbor:"kind"`
	Feature  string     `json:"feature" cbor:"feature"`
	RowID    string     `json:"row_id,omitempty" cbor:"row_id,omitempty"`
	Position solid.Vec3 `json:"position" cbor:"position"`
	Rotation solid.Vec3 `json:"rotation" cbor:"rotation"`

	Box       *solid.Box       `json:"box,omitempty" cbor:"box,omitempty"`
	Cylinder  *solid.Cylinder  `json:"cylinder,omitempty" cbor:"cylinder,omitempty"`
	Frustum   *solid.Frustum   `json:"frustum,omitempty" cbor:"frustum,omitempty"`
	Extrusion *solid.Extrusion `json:"extrusion,omitempty" cbor:"extrusion,omitempty"`

	Color   palette.Color    `json:"color" cbor:"color"`
	Opacity float64          `json:"opacity" cbor:"opacity"`
	Label   string           `json:"label,omitempty" cbor:"label,omitempty"`
	Title   string           `json:"title,omitempty" cbor:"title,omitempty"`
	Target  *interact.Target `json:"target,omitempty" cbor:"target,omitempty"`
}

// NewBox returns an opaque box primitive.
func NewBox(width, height, depth float64) Primitive {
	return Primitive{Kind: KindBox, Box: &solid.Box{Width: width, Height: height, Depth: depth}, Opacity: 1}
}

// NewCylinder returns an opaque vertical cylinder primitive.
func NewCylinder(radius, height float64) Primitive {
	return Primitive{Kind: KindCylinder, Cylinder: &solid.Cylinder{Radius: radius, Height: height}, Opacity: 1}
}

// NewFrustum returns an opaque frustum primitive.
func NewFrustum(f solid.Frustum) Primitive {
	return Primitive{Kind: KindFrustum, Frustum: &f, Opacity: 1}
}

// NewExtrusion returns an opaque extruded-profile primitive.
func NewExtrusion(e solid.Extrusion) Primitive {
	return Primitive{Kind: KindExtrusion, Extrusion: &e, Opacity: 1}
}

// NewLabel returns a text marker.
func NewLabel(text string) Primitive {
	return Primitive{Kind: KindLabel, Label: text, Color: palette.Label, Opacity: 1}
}

// At sets the position.
func (p Primitive) At(pos solid.Vec3) Primitive { p.Position = pos; return p }

// Rotated sets the rotation.
func (p Primitive) Rotated(r solid.Vec3) Primitive { p.Rotation = r; return p }

// Painted sets the fill color.
func (p Primitive) Painted(c palette.Color) Primitive { p.Color = c; return p }

// Translucent sets the opacity.
func (p Primitive) Translucent(opacity float64) Primitive { p.Opacity = opacity; return p }

// Titled sets the hover title.
func (p Primitive) Titled(title string) Primitive { p.Title = title; return p }

// Clicks attaches a click target; nil leaves the primitive inert.
func (p Primitive) Clicks(t *interact.Target) Primitive { p.Target = t; return p }

// Clickable reports whether the primitive forwards clicks.
func (p Primitive) Clickable() bool { return p.Target != nil }

// Transform returns the primitive's placement.
func (p Primitive) Transform() solid.Transform {
	return solid.Transform{Position: p.Position, Rotation: p.Rotation}
}

// Solid returns the primitive's shape, or nil for labels.
func (p Primitive) Solid() solid.Solid {
	switch {
	case p.Box != nil:
		return *p.Box
	case p.Cylinder != nil:
		return *p.Cylinder
	case p.Frustum != nil:
		return *p.Frustum
	case p.Extrusion != nil:
		return *p.Extrusion
	}
	return nil
}

// Mesh returns the primitive tessellated in scene space. Labels yield an
// empty mesh.
func (p Primitive) Mesh() solid.Mesh {
	s := p.Solid()
	if s == nil {
		return solid.Mesh{}
	}
	return s.Mesh().Transformed(p.Transform())
}

// Bounds returns the primitive's scene-space bounding box. A label is a
// point at its position.
func (p Primitive) Bounds() solid.Bounds {
	if p.Solid() == nil {
		return solid.Bounds{Min: p.Position, Max: p.Position}
	}
	return p.Mesh().Bounds()
}
