package sink

import (
	"encoding/json"

	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/roles"
	"github.com/matzehuels/progresstwin/pkg/scene"
	"github.com/matzehuels/progresstwin/pkg/solid"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	meshes bool
	legend bool
	indent bool
}

// WithMeshes adds each primitive's scene-space mesh to the output.
func WithMeshes() JSONOption { return func(r *jsonRenderer) { r.meshes = true } }

// WithLegend adds the status color legend.
func WithLegend() JSONOption { return func(r *jsonRenderer) { r.legend = true } }

// WithCompact disables indentation.
func WithCompact() JSONOption { return func(r *jsonRenderer) { r.indent = false } }

type jsonOutput struct {
	StructureID string           `json:"structure_id"`
	Family      matrix.Family    `json:"family"`
	Language    string           `json:"language"`
	Bounds      *solid.Bounds    `json:"bounds,omitempty"`
	Roles       roles.RoleMap    `json:"roles,omitempty"`
	Offsets     chainage.Offsets `json:"offsets,omitempty"`
	Legend      []jsonLegend     `json:"legend,omitempty"`
	Primitives  []jsonPrimitive  `json:"primitives"`
}

type jsonLegend struct {
	Status matrix.Status `json:"status"`
	Color  palette.Color `json:"color"`
}

type jsonPrimitive struct {
	scene.Primitive
	Mesh *solid.Mesh `json:"mesh,omitempty"`
}

// RenderJSON encodes sc. Primitives keep scene order.
func RenderJSON(sc *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: true}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		StructureID: sc.StructureID,
		Family:      sc.Family,
		Language:    sc.Language,
		Roles:       sc.Roles,
		Offsets:     sc.Offsets,
		Primitives:  make([]jsonPrimitive, 0, len(sc.Primitives)),
	}
	if b := sc.Bounds(); !b.Empty() {
		out.Bounds = &b
	}
	if r.legend {
		for _, e := range palette.Legend() {
			out.Legend = append(out.Legend, jsonLegend{Status: e.Status, Color: e.Color})
		}
	}
	for _, p := range sc.Primitives {
		jp := jsonPrimitive{Primitive: p}
		if r.meshes && p.Solid() != nil {
			m := p.Mesh()
			jp.Mesh = &m
		}
		out.Primitives = append(out.Primitives, jp)
	}

	if !r.indent {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
