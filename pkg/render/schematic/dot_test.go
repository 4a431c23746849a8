package schematic

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
)

func bridgeRows() []matrix.Row {
	return []matrix.Row{
		{ID: "c2", Location: "C2", FoundationType: matrix.FoundationAbutment},
		{ID: "p1-l", Location: "P1", FoundationType: matrix.FoundationPier, Direction: matrix.DirectionLeft,
			Cells: map[string]matrix.Cell{"col-pile": {Code: "K-1", Status: matrix.StatusSigned}}},
		{ID: "p1-r", Location: "P1", FoundationType: matrix.FoundationPier, Direction: matrix.DirectionRight},
		{ID: "c1", Location: "C1", FoundationType: matrix.FoundationAbutment},
	}
}

func TestToDOTChain(t *testing.T) {
	rows := bridgeRows()
	offsets := chainage.Layout(rows, 25)
	dot := ToDOT(matrix.Structure{ID: "K-1"}, rows, offsets, Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=LR",
		`"c1" [label="C1"`,
		`{ rank=same; "p1-l"; "p1-r"; }`,
		`"c1" -> "p1-l" [label="25 m"]`,
		`"p1-l" -> "c2" [label="25 m"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Index(dot, `"c1" [`) > strings.Index(dot, `"c2" [`) {
		t.Error("nodes should follow chainage order")
	}
}

func TestToDOTDetailed(t *testing.T) {
	rows := bridgeRows()
	dot := ToDOT(matrix.Structure{}, rows, chainage.Layout(rows, 25), Options{Detailed: true})
	if !strings.Contains(dot, `label="P1\nPIER\nLEFT\n+25 m"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTStatusColumn(t *testing.T) {
	rows := bridgeRows()
	dot := ToDOT(matrix.Structure{}, rows, chainage.Layout(rows, 25), Options{Column: "col-pile"})

	if !strings.Contains(dot, `fillcolor="`+string(palette.Signed)+`"`) {
		t.Error("signed cell should color its node")
	}
	if !strings.Contains(dot, `fillcolor="`+string(palette.Empty)+`"`) {
		t.Error("missing cells should use the empty color")
	}
	if !strings.Contains(dot, `tooltip="K-1"`) {
		t.Error("cell code should become the tooltip")
	}
}

func TestToDOTStructureName(t *testing.T) {
	st := matrix.Structure{Name: matrix.LocalizedText{"en": "Creek Bridge", "tr": "Dere Köprüsü"}}
	dot := ToDOT(st, nil, nil, Options{Language: "tr"})
	if !strings.Contains(dot, `label="Dere Köprüsü"`) {
		t.Errorf("structure name not localized:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("svg without viewBox should pass through, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	rows := bridgeRows()
	dot := ToDOT(matrix.Structure{ID: "K-1"}, rows, chainage.Layout(rows, 25), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG output is not svg")
	}
}
