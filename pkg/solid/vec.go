package solid

import "math"

// Vec2 is a point of a planar profile.
type Vec2 struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
}

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
	Z float64 `json:"z" cbor:"z"`
}

// V3 is shorthand for a Vec3 literal.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }
func (v Vec3) Min(o Vec3) Vec3      { return Vec3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)} }
func (v Vec3) Max(o Vec3) Vec3      { return Vec3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3    { return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X} }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }

// Near reports whether v and o differ by at most eps on every axis.
func (v Vec3) Near(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Transform places a local solid in the scene.
type Transform struct {
	Position Vec3 `json:"position" cbor:"position"`
	Rotation Vec3 `json:"rotation" cbor:"rotation"`
}

// Apply maps a local point into scene space.
func (t Transform) Apply(v Vec3) Vec3 {
	if t.Rotation.X != 0 {
		s, c := math.Sincos(t.Rotation.X)
		v = Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
	}
	if t.Rotation.Y != 0 {
		s, c := math.Sincos(t.Rotation.Y)
		v = Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
	}
	if t.Rotation.Z != 0 {
		s, c := math.Sincos(t.Rotation.Z)
		v = Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
	}
	return v.Add(t.Position)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3 `json:"min" cbor:"min"`
	Max Vec3 `json:"max" cbor:"max"`
}

// Empty reports whether b encloses nothing.
func (b Bounds) Empty() bool { return b.Min.X > b.Max.X }

// Union grows b to include o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the midpoint of b.
func (b Bounds) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Size returns the extents of b.
func (b Bounds) Size() Vec3 { return b.Max.Sub(b.Min) }

// EmptyBounds returns bounds that any union replaces.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}
