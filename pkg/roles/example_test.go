package roles_test

import (
	"fmt"

	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/roles"
)

func ExampleResolve() {
	columns := []matrix.Column{
		{ID: "c1", Group: matrix.Text("Cap Beam"), Name: matrix.Text("Cap beam setting-out"), Type: matrix.ColumnSettingOut},
		{ID: "c2", Group: matrix.Text("Cap Beam"), Name: matrix.Text("Cap beam concrete - V"), Type: matrix.ColumnVerification},
	}

	m := roles.Resolve(columns, roles.BridgeRules())
	id, ok := m.Lookup(roles.CapBeam)
	fmt.Println(id, ok)

	_, ok = m.Lookup(roles.Deck)
	fmt.Println(ok)
	// Output:
	// c2 true
	// false
}
