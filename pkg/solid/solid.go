package solid

import "math"

// DefaultSegments is the number of sides used to approximate a cylinder.
const DefaultSegments = 16

// Face is a planar polygon of a mesh. Loops[0] is the outer boundary and
// any further loops are holes; every loop indexes Mesh.Vertices.
type Face struct {
	Loops [][]int `json:"loops" cbor:"loops"`
}

// Mesh is a polygonal surface in local or scene coordinates.
type Mesh struct {
	Vertices []Vec3 `json:"vertices" cbor:"vertices"`
	Faces    []Face `json:"faces" cbor:"faces"`
}

// Transformed returns a copy of m with every vertex mapped through t.
func (m Mesh) Transformed(t Transform) Mesh {
	out := Mesh{Vertices: make([]Vec3, len(m.Vertices)), Faces: m.Faces}
	for i, v := range m.Vertices {
		out.Vertices[i] = t.Apply(v)
	}
	return out
}

// Bounds returns the bounding box of m's vertices.
func (m Mesh) Bounds() Bounds {
	b := EmptyBounds()
	for _, v := range m.Vertices {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// Centroid returns the mean of a face's outer loop.
func (m Mesh) Centroid(f Face) Vec3 {
	if len(f.Loops) == 0 || len(f.Loops[0]) == 0 {
		return Vec3{}
	}
	var c Vec3
	for _, i := range f.Loops[0] {
		c = c.Add(m.Vertices[i])
	}
	return c.Scale(1 / float64(len(f.Loops[0])))
}

// Normal returns the unit normal of a face's outer loop (Newell's method).
func (m Mesh) Normal(f Face) Vec3 {
	var n Vec3
	if len(f.Loops) == 0 {
		return n
	}
	loop := f.Loops[0]
	for i := range loop {
		a, b := m.Vertices[loop[i]], m.Vertices[loop[(i+1)%len(loop)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if l := n.Len(); l > 0 {
		n = n.Scale(1 / l)
	}
	return n
}

// Solid is a parametric shape that can be tessellated.
type Solid interface {
	Mesh() Mesh
}

// Box is an axis-aligned cuboid: Width along X, Height along Y, Depth
// along Z.
type Box struct {
	Width  float64 `json:"width" cbor:"width"`
	Height float64 `json:"height" cbor:"height"`
	Depth  float64 `json:"depth" cbor:"depth"`
}

// Mesh returns the six faces of the box.
func (b Box) Mesh() Mesh {
	return Frustum{
		BottomWidth: b.Width, BottomDepth: b.Depth,
		TopWidth: b.Width, TopDepth: b.Depth,
		Height: b.Height,
	}.quadMesh()
}

// Cylinder is a vertical prism approximating a circular column.
type Cylinder struct {
	Radius   float64 `json:"radius" cbor:"radius"`
	Height   float64 `json:"height" cbor:"height"`
	Segments int     `json:"segments,omitempty" cbor:"segments,omitempty"`
}

// Mesh returns the side quads and both caps of the cylinder.
func (c Cylinder) Mesh() Mesh {
	n := c.Segments
	if n < 3 {
		n = DefaultSegments
	}
	profile := make([]Vec2, n)
	for i := range n {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		profile[i] = Vec2{c.Radius * co, c.Radius * s}
	}
	// Extrude along Z, then stand it up so the axis is Y.
	m := Extrusion{Outer: profile, Depth: c.Height}.Mesh()
	return m.Transformed(Transform{Rotation: Vec3{X: -math.Pi / 2}})
}

// Frustum is a truncated rectangular pyramid: a BottomWidth x BottomDepth
// rectangle at y = -Height/2 joined to a TopWidth x TopDepth rectangle at
// y = +Height/2.
type Frustum struct {
	BottomWidth float64 `json:"bottom_width" cbor:"bottom_width"`
	BottomDepth float64 `json:"bottom_depth" cbor:"bottom_depth"`
	TopWidth    float64 `json:"top_width" cbor:"top_width"`
	TopDepth    float64 `json:"top_depth" cbor:"top_depth"`
	Height      float64 `json:"height" cbor:"height"`
}

// Vertices returns the eight corners: bottom ring first, then top ring,
// each counter-clockwise seen from above.
func (f Frustum) Vertices() []Vec3 {
	bw, bd := f.BottomWidth/2, f.BottomDepth/2
	tw, td := f.TopWidth/2, f.TopDepth/2
	h := f.Height / 2
	return []Vec3{
		{-bw, -h, -bd}, {bw, -h, -bd}, {bw, -h, bd}, {-bw, -h, bd},
		{-tw, h, -td}, {tw, h, -td}, {tw, h, td}, {-tw, h, td},
	}
}

// Triangles returns the twelve triangles (two per side) indexing
// [Frustum.Vertices], wound outward.
func (f Frustum) Triangles() [][3]int {
	return [][3]int{
		{0, 1, 2}, {0, 2, 3}, // bottom
		{4, 6, 5}, {4, 7, 6}, // top
		{0, 4, 5}, {0, 5, 1}, // back
		{1, 5, 6}, {1, 6, 2}, // right
		{2, 6, 7}, {2, 7, 3}, // front
		{3, 7, 4}, {3, 4, 0}, // left
	}
}

// Mesh returns the frustum as twelve triangular faces.
func (f Frustum) Mesh() Mesh {
	m := Mesh{Vertices: f.Vertices()}
	for _, t := range f.Triangles() {
		m.Faces = append(m.Faces, Face{Loops: [][]int{{t[0], t[1], t[2]}}})
	}
	return m
}

func (f Frustum) quadMesh() Mesh {
	return Mesh{
		Vertices: f.Vertices(),
		Faces: []Face{
			{Loops: [][]int{{0, 3, 2, 1}}},
			{Loops: [][]int{{4, 5, 6, 7}}},
			{Loops: [][]int{{0, 1, 5, 4}}},
			{Loops: [][]int{{1, 2, 6, 5}}},
			{Loops: [][]int{{2, 3, 7, 6}}},
			{Loops: [][]int{{3, 0, 4, 7}}},
		},
	}
}

// Extrusion is a planar profile in the XY plane swept along Z by Depth,
// centered on z = 0. Holes must lie inside Outer.
type Extrusion struct {
	Outer []Vec2   `json:"outer" cbor:"outer"`
	Holes [][]Vec2 `json:"holes,omitempty" cbor:"holes,omitempty"`
	Depth float64  `json:"depth" cbor:"depth"`
}

// Mesh returns both caps (holes included as inner loops) and the side
// walls of the outer boundary and of every hole.
func (e Extrusion) Mesh() Mesh {
	var m Mesh
	half := e.Depth / 2

	ring := func(pts []Vec2) (front, back []int) {
		pts = counterClockwise(pts)
		for _, p := range pts {
			front = append(front, len(m.Vertices))
			m.Vertices = append(m.Vertices, Vec3{p.X, p.Y, -half})
		}
		for _, p := range pts {
			back = append(back, len(m.Vertices))
			m.Vertices = append(m.Vertices, Vec3{p.X, p.Y, half})
		}
		return front, back
	}
	walls := func(front, back []int, inward bool) {
		n := len(front)
		for i := range n {
			j := (i + 1) % n
			loop := []int{front[i], front[j], back[j], back[i]}
			if inward {
				loop = []int{front[j], front[i], back[i], back[j]}
			}
			m.Faces = append(m.Faces, Face{Loops: [][]int{loop}})
		}
	}

	of, ob := ring(e.Outer)
	frontCap := Face{Loops: [][]int{reversed(of)}}
	backCap := Face{Loops: [][]int{ob}}
	walls(of, ob, false)

	for _, h := range e.Holes {
		hf, hb := ring(h)
		frontCap.Loops = append(frontCap.Loops, hf)
		backCap.Loops = append(backCap.Loops, reversed(hb))
		walls(hf, hb, true)
	}
	m.Faces = append(m.Faces, frontCap, backCap)
	return m
}

// SignedArea returns the signed area of a polygon; positive means
// counter-clockwise.
func SignedArea(pts []Vec2) float64 {
	var a float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func counterClockwise(pts []Vec2) []Vec2 {
	if SignedArea(pts) >= 0 {
		return pts
	}
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func reversed(idx []int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		out[len(idx)-1-i] = v
	}
	return out
}
