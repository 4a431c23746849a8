package roles

import (
	"reflect"
	"testing"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

func col(id, group, name string, typ matrix.ColumnType) matrix.Column {
	return matrix.Column{
		ID:     id,
		Family: matrix.FamilyBridge,
		Group:  matrix.Text(group),
		Name:   matrix.Text(name),
		Type:   typ,
	}
}

func bridgeColumns() []matrix.Column {
	return []matrix.Column{
		col("exc-so", "Excavation", "Excavation setting-out", matrix.ColumnSettingOut),
		col("exc-v", "Excavation", "Excavation - V", matrix.ColumnVerification),
		col("pile-so", "Piles", "Pile setting-out", matrix.ColumnSettingOut),
		col("pile-rebar", "Piles", "Pile rebar - V", matrix.ColumnVerification),
		col("pile-conc", "Piles", "Pile concrete - V", matrix.ColumnVerification),
		col("fnd-so", "Foundation", "Foundation setting-out", matrix.ColumnSettingOut),
		col("fnd-v", "Foundation", "Foundation concrete - V", matrix.ColumnVerification),
		col("cap-v", "Cap Beam", "Cap beam - V", matrix.ColumnVerification),
		col("note", "Info", "Remarks", matrix.ColumnInfo),
	}
}

func TestResolveDeterministic(t *testing.T) {
	cols := bridgeColumns()
	first := Resolve(cols, BridgeRules())
	for i := 0; i < 20; i++ {
		if got := Resolve(cols, BridgeRules()); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Resolve = %v, want %v", i, got, first)
		}
	}
}

func TestResolvePrefersVerification(t *testing.T) {
	m := Resolve(bridgeColumns(), BridgeRules())

	tests := []struct {
		role Role
		want string
	}{
		{Excavation, "exc-v"},
		{Piles, "pile-conc"},
		{Foundation, "fnd-v"},
		{CapBeam, "cap-v"},
	}
	for _, tt := range tests {
		got, ok := m.Lookup(tt.role)
		if !ok || got != tt.want {
			t.Errorf("%s = %q (ok=%v), want %q", tt.role, got, ok, tt.want)
		}
	}
}

func TestResolveUnresolved(t *testing.T) {
	m := Resolve(bridgeColumns(), BridgeRules())

	for _, role := range []Role{Platform, LeanConcrete, Elevation, Bearing, Girder, Deck} {
		if id, ok := m.Lookup(role); ok {
			t.Errorf("%s resolved to %q, want unresolved", role, id)
		}
		if _, present := m[role]; !present {
			t.Errorf("%s missing from role map", role)
		}
	}

	unresolved := m.Unresolved(BridgeRules())
	if len(unresolved) != 6 {
		t.Errorf("Unresolved() = %v, want 6 roles", unresolved)
	}
}

func TestResolveSteps(t *testing.T) {
	rule := Rule{
		Role:               "thing",
		GroupKeywords:      []string{"thing"},
		NameKeywords:       []string{"priority", "secondary"},
		PreferVerification: true,
	}
	rs := RuleSet{Rules: []Rule{rule}}

	tests := []struct {
		name string
		cols []matrix.Column
		want string
	}{
		{
			name: "global fallback over verification names",
			cols: []matrix.Column{
				col("a", "Other", "secondary check", matrix.ColumnSettingOut),
				col("b", "Other", "secondary check", matrix.ColumnVerification),
			},
			want: "b",
		},
		{
			name: "priority keyword beats table order",
			cols: []matrix.Column{
				col("a", "Thing", "secondary - V", matrix.ColumnVerification),
				col("b", "Thing", "priority - V", matrix.ColumnVerification),
			},
			want: "b",
		},
		{
			name: "generic marker",
			cols: []matrix.Column{
				col("a", "Thing", "rebar", matrix.ColumnVerification),
				col("b", "Thing", "Beton dökümü", matrix.ColumnVerification),
				col("c", "Thing", "curing", matrix.ColumnVerification),
			},
			want: "b",
		},
		{
			name: "last candidate",
			cols: []matrix.Column{
				col("a", "Thing", "rebar", matrix.ColumnVerification),
				col("b", "Thing", "formwork", matrix.ColumnVerification),
			},
			want: "b",
		},
		{
			name: "setting-out only group keeps all candidates",
			cols: []matrix.Column{
				col("a", "Thing", "first", matrix.ColumnSettingOut),
				col("b", "Thing", "second", matrix.ColumnSettingOut),
			},
			want: "b",
		},
		{
			name: "nothing matches",
			cols: []matrix.Column{
				col("a", "Other", "unrelated", matrix.ColumnVerification),
			},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.cols, rs)["thing"]; got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveExcludeSeparatesSimilarWords(t *testing.T) {
	cols := []matrix.Column{
		{ID: "kazik", Group: matrix.LocalizedText{"tr": "Kazık"}, Name: matrix.LocalizedText{"tr": "Kazık Beton - V"}, Type: matrix.ColumnVerification},
		{ID: "kazi", Group: matrix.LocalizedText{"tr": "Temel Kazısı"}, Name: matrix.LocalizedText{"tr": "Kazı Kontrol"}, Type: matrix.ColumnVerification},
	}
	m := Resolve(cols, BridgeRules())

	if got := m[Excavation]; got != "kazi" {
		t.Errorf("excavation = %q, want kazi", got)
	}
	if got := m[Piles]; got != "kazik" {
		t.Errorf("piles = %q, want kazik", got)
	}
}

func TestResolveEmpty(t *testing.T) {
	m := Resolve(nil, BridgeRules())
	if len(m) != len(BridgeRules().Rules) {
		t.Fatalf("len = %d, want one entry per rule", len(m))
	}
	for role, id := range m {
		if id != "" {
			t.Errorf("%s = %q, want unresolved", role, id)
		}
	}
}

func TestParseRules(t *testing.T) {
	doc := `
[[rules]]
role = "piles"
group_keywords = ["pile"]
name_keywords = ["concrete"]

[[rules]]
role = "deck"
group_keywords = ["deck"]
prefer_verification = false
`
	rs, err := ParseRules(doc)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rs.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(rs.Rules))
	}
	if !rs.Rules[0].PreferVerification {
		t.Error("omitted prefer_verification should default to true")
	}
	if rs.Rules[1].PreferVerification {
		t.Error("explicit prefer_verification = false was ignored")
	}
	if !reflect.DeepEqual(rs.GenericMarkers, DefaultGenericMarkers) {
		t.Errorf("GenericMarkers = %v", rs.GenericMarkers)
	}
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing role", "[[rules]]\ngroup_keywords = [\"x\"]\n"},
		{"duplicate role", "[[rules]]\nrole = \"a\"\n[[rules]]\nrole = \"a\"\n"},
		{"bad toml", "[[rules]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRules(tt.doc); err == nil {
				t.Error("expected error")
			}
		})
	}
}
