package synth

import (
	"slices"

	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/roles"
	"github.com/matzehuels/progresstwin/pkg/scene"
)

// Input is everything needed to synthesize one structure.
type Input struct {
	Structure matrix.Structure
	Rows      []matrix.Row
	Columns   []matrix.Column
	Options   Options
}

// Build synthesizes the scene of in.Structure. Culverts use [Culvert];
// every other family is drawn as a bridge. Rows keep their input order in
// the primitive list. Build never fails: zero rows give an empty scene.
func Build(in Input) *scene.Scene {
	opts := in.Options
	opts.SetDefaults()

	s := &scene.Scene{
		StructureID: in.Structure.ID,
		Family:      in.Structure.Family,
		Language:    opts.Language,
		Primitives:  []scene.Primitive{},
	}

	culvert := in.Structure.Family == matrix.FamilyCulvert
	if !culvert {
		cols := slices.Clone(in.Columns)
		matrix.SortColumns(cols)
		s.Roles = roles.Resolve(cols, opts.Rules)
	}
	if len(in.Rows) == 0 {
		return s
	}

	s.Offsets = chainage.ForFamily(in.Structure.Family, in.Rows, opts.Spacing)
	for _, row := range in.Rows {
		if row.StructureID == "" {
			row.StructureID = in.Structure.ID
		}
		z := chainage.Transverse(row.Direction, opts.TransverseGap)
		x := s.Offsets[row.ID]
		if culvert {
			s.Primitives = append(s.Primitives, Culvert(row, opts.Culvert, z, x, opts)...)
		} else {
			s.Primitives = append(s.Primitives, Bridge(row, s.Roles, z, x, opts)...)
		}
	}
	return s
}
