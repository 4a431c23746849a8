package synth

import (
	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/roles"
	"github.com/matzehuels/progresstwin/pkg/scene"
)

// binding is a feature's resolved column on one row.
type binding struct {
	target *interact.Target
	color  palette.Color
}

// bind looks up columnID on row. An empty columnID gives the EMPTY color
// and no target.
func bind(row matrix.Row, columnID string) binding {
	t := interact.NewTarget(row, columnID)
	if t == nil {
		return binding{color: palette.Of(matrix.StatusEmpty)}
	}
	return binding{target: t, color: palette.Of(t.Cell.Status)}
}

// bindRole binds the column resolved for role.
func bindRole(row matrix.Row, rm roles.RoleMap, role roles.Role) binding {
	id, _ := rm.Lookup(role)
	return bind(row, id)
}

// apply paints p and attaches the click target.
func (b binding) apply(p scene.Primitive) scene.Primitive {
	return p.Painted(b.color).Clicks(b.target)
}
