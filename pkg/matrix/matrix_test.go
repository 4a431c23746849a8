package matrix

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"SIGNED", StatusSigned},
		{" signed ", StatusSigned},
		{"pending", StatusPending},
		{"PREPARING", StatusPreparing},
		{"REJECTED", StatusRejected},
		{"", StatusEmpty},
		{"APPROVED?", StatusEmpty},
	}
	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"LEFT", DirectionLeft},
		{"right", DirectionRight},
		{"CENTER", DirectionCenter},
		{"", DirectionCenter},
		{"diagonal", DirectionCenter},
	}
	for _, tt := range tests {
		if got := ParseDirection(tt.in); got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFoundationType(t *testing.T) {
	tests := []struct {
		in   string
		want FoundationType
	}{
		{"PIER", FoundationPier},
		{" pier ", FoundationPier},
		{"Abutment", FoundationAbutment},
		{"main", FoundationMain},
		{"ayak", FoundationPier},
		{"Raft", "Raft"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseFoundationType(tt.in); got != tt.want {
			t.Errorf("ParseFoundationType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRowCell(t *testing.T) {
	r := Row{ID: "r1", Cells: map[string]Cell{
		"c1": {Code: "KZ-12", Status: StatusSigned},
		"c2": {Code: "", Status: "weird"},
	}}

	if got := r.Cell("c1"); got != (Cell{Code: "KZ-12", Status: StatusSigned}) {
		t.Errorf("Cell(c1) = %+v", got)
	}
	if got := r.Cell("c2"); got != (Cell{Code: "", Status: "weird"}) {
		t.Errorf("Cell(c2) = %+v, want the stored cell", got)
	}
	if got := r.Cell("c2").Normalize(); got != Placeholder() {
		t.Errorf("Cell(c2).Normalize() = %+v, want placeholder", got)
	}
	if got := r.Cell("missing"); got != Placeholder() {
		t.Errorf("Cell(missing) = %+v, want placeholder", got)
	}
}

func TestRowClassification(t *testing.T) {
	tests := []struct {
		name     string
		row      Row
		abutment bool
		pier     bool
	}{
		{"C prefix", Row{Location: "C1"}, true, false},
		{"A prefix", Row{Location: "a2"}, true, false},
		{"pier", Row{Location: "P3", FoundationType: FoundationPier}, false, true},
		{"P with abutment type", Row{Location: "P1", FoundationType: FoundationAbutment}, true, false},
		{"culvert", Row{Location: "K-12"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.IsAbutment(); got != tt.abutment {
				t.Errorf("IsAbutment() = %v, want %v", got, tt.abutment)
			}
			if got := tt.row.IsPier(); got != tt.pier {
				t.Errorf("IsPier() = %v, want %v", got, tt.pier)
			}
		})
	}
}

func TestLocalizedText(t *testing.T) {
	lt := LocalizedText{"en": "Pile", "tr": "Kazık"}

	if got := lt.Get("tr"); got != "Kazık" {
		t.Errorf("Get(tr) = %q", got)
	}
	if got := lt.Get("tr-TR"); got != "Kazık" {
		t.Errorf("Get(tr-TR) = %q", got)
	}
	if got := lt.Get("de"); got != "Pile" {
		t.Errorf("Get(de) = %q, want fallback to en", got)
	}
	if got := (LocalizedText{"tr": "Kazık"}).Get("de"); got != "Kazık" {
		t.Errorf("Get without en = %q", got)
	}
	if !lt.ContainsAny("KAZ") {
		t.Error("ContainsAny should match case-insensitively across translations")
	}
	if lt.ContainsAny("beam", "") {
		t.Error("ContainsAny matched an absent keyword")
	}
}

func TestDatasetColumnsOf(t *testing.T) {
	d := Dataset{Columns: []Column{
		{ID: "b", Family: FamilyBridge, OrderIndex: 2},
		{ID: "x", Family: FamilyCulvert, OrderIndex: 0},
		{ID: "a", Family: FamilyBridge, OrderIndex: 2},
		{ID: "c", Family: FamilyBridge, OrderIndex: 1},
	}}

	got := d.ColumnsOf(FamilyBridge)
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("ColumnsOf returned %d columns, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("ColumnsOf[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestDatasetNormalize(t *testing.T) {
	d := Dataset{
		Structures: []Structure{{ID: "s", Family: "Bridge"}},
		Columns:    []Column{{ID: "c", Family: "BRIDGE", Type: "Kontrol"}},
		Rows: []Row{{ID: "r", Direction: "sol", FoundationType: "pier", Cells: map[string]Cell{
			"c": {Code: "", Status: "signed"},
		}}},
	}
	d.Normalize()

	if d.Structures[0].Family != FamilyBridge {
		t.Errorf("structure family = %q", d.Structures[0].Family)
	}
	if d.Columns[0].Type != ColumnVerification {
		t.Errorf("column type = %q", d.Columns[0].Type)
	}
	if d.Rows[0].Direction != DirectionLeft {
		t.Errorf("direction = %q", d.Rows[0].Direction)
	}
	if d.Rows[0].FoundationType != FoundationPier {
		t.Errorf("foundation type = %q", d.Rows[0].FoundationType)
	}
	if c := d.Rows[0].Cells["c"]; c != (Cell{Code: "", Status: "signed"}) {
		t.Errorf("cells are kept as stored, got %+v", c)
	}
}
