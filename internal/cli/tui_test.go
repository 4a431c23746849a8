package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

func testDatasetModel() StructureListModel {
	d := &matrix.Dataset{
		Structures: []matrix.Structure{
			{ID: "K-101", Family: matrix.FamilyBridge},
			{ID: "M-7", Family: matrix.FamilyCulvert},
		},
	}
	return NewStructureListModel(d, "en")
}

func TestStructureListNavigation(t *testing.T) {
	var m tea.Model = testDatasetModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamped at the last entry
	if got := m.(StructureListModel).Cursor; got != 1 {
		t.Fatalf("Cursor = %d, want 1", got)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := m.(StructureListModel).Selected
	if sel == nil || sel.ID != "M-7" {
		t.Fatalf("Selected = %+v, want M-7", sel)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestStructureListView(t *testing.T) {
	view := testDatasetModel().View()
	for _, want := range []string{"Select Structure", "K-101", "M-7", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProgressBarWidth(t *testing.T) {
	tests := []struct {
		name   string
		counts map[matrix.Status]int
	}{
		{"empty", nil},
		{"single", map[matrix.Status]int{matrix.StatusSigned: 3}},
		{"mixed", map[matrix.Status]int{matrix.StatusSigned: 1, matrix.StatusPending: 1, matrix.StatusRejected: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := progressBar(tt.counts, 10)
			n := strings.Count(bar, "█") + strings.Count(bar, "·")
			if n != 10 {
				t.Errorf("bar has %d cells, want 10", n)
			}
		})
	}
}
