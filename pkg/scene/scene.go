// Package scene holds the flat, renderer-independent description of a
// digital twin: a list of positioned, colored, optionally clickable
// primitives.
//
// Synthesis writes primitives through a [Builder]; render sinks and the
// HTTP API read a [Scene]. Nothing in a scene refers back to the code that
// produced it, so any drawing technology can consume it.
package scene

import (
	"context"
	"fmt"

	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/roles"
	"github.com/matzehuels/progresstwin/pkg/solid"
)

// Scene is the synthesized twin of one structure.
type Scene struct {
	StructureID string           `json:"structure_id" cbor:"structure_id"`
	Family      matrix.Family    `json:"family" cbor:"family"`
	Language    string           `json:"language" cbor:"language"`
	Roles       roles.RoleMap    `json:"roles,omitempty" cbor:"roles,omitempty"`
	Offsets     chainage.Offsets `json:"offsets,omitempty" cbor:"offsets,omitempty"`
	Primitives  []Primitive      `json:"primitives" cbor:"primitives"`
}

// Len returns the number of primitives.
func (s *Scene) Len() int { return len(s.Primitives) }

// Primitive looks up a primitive by id.
func (s *Scene) Primitive(id string) (Primitive, bool) {
	for _, p := range s.Primitives {
		if p.ID == id {
			return p, true
		}
	}
	return Primitive{}, false
}

// Clickable returns the primitives carrying a click target, in scene order.
func (s *Scene) Clickable() []Primitive {
	var out []Primitive
	for _, p := range s.Primitives {
		if p.Clickable() {
			out = append(out, p)
		}
	}
	return out
}

// Bounds returns the bounding box of every primitive.
func (s *Scene) Bounds() solid.Bounds {
	b := solid.EmptyBounds()
	for _, p := range s.Primitives {
		b = b.Union(p.Bounds())
	}
	return b
}

// Click forwards the target of primitive id through d. Unknown ids are
// [errors.ErrCodeNotFound]; inert primitives are
// [errors.ErrCodeNotInteractive]. The handler runs at most once.
func (s *Scene) Click(ctx context.Context, id string, d *interact.Dispatcher) (*interact.Target, error) {
	p, ok := s.Primitive(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no primitive %q in scene %s", id, s.StructureID)
	}
	if err := d.Forward(ctx, p.Target); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "click %s", id)
	}
	return p.Target, nil
}

// Builder accumulates the primitives of one row, assigning ids and
// shifting every primitive by the row origin.
type Builder struct {
	rowID  string
	origin solid.Vec3
	counts map[string]int
	prims  []Primitive
}

// NewBuilder returns a builder for rowID placing primitives relative to
// origin.
func NewBuilder(rowID string, origin solid.Vec3) *Builder {
	return &Builder{rowID: rowID, origin: origin, counts: make(map[string]int)}
}

// Add records p as part of feature. Ids are "<row>/<feature>/<n>", n
// counting from zero per feature.
func (b *Builder) Add(feature string, p Primitive) {
	n := b.counts[feature]
	b.counts[feature] = n + 1
	p.ID = fmt.Sprintf("%s/%s/%d", b.rowID, feature, n)
	p.Feature = feature
	p.RowID = b.rowID
	p.Position = p.Position.Add(b.origin)
	b.prims = append(b.prims, p)
}

// Primitives returns everything added so far.
func (b *Builder) Primitives() []Primitive { return b.prims }
