package palette

import (
	"testing"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

func TestOfTotal(t *testing.T) {
	tests := []struct {
		status matrix.Status
		want   Color
	}{
		{matrix.StatusEmpty, Empty},
		{matrix.StatusPreparing, Preparing},
		{matrix.StatusPending, Pending},
		{matrix.StatusSigned, Signed},
		{matrix.StatusRejected, Rejected},
		{"", Empty},
		{"ARCHIVED", Empty},
		{"signed", Signed},
	}
	for _, tt := range tests {
		if got := Of(tt.status); got != tt.want {
			t.Errorf("Of(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestOfDistinct(t *testing.T) {
	seen := make(map[Color]matrix.Status)
	for _, s := range matrix.Statuses {
		c := Of(s)
		if prev, dup := seen[c]; dup {
			t.Errorf("%s and %s share color %s", prev, s, c)
		}
		seen[c] = s
	}
}

func TestLegend(t *testing.T) {
	l := Legend()
	if len(l) != 5 {
		t.Fatalf("legend entries = %d, want 5", len(l))
	}
	if l[0].Status != matrix.StatusEmpty || l[4].Status != matrix.StatusRejected {
		t.Errorf("legend order = %v", l)
	}
}

func TestShade(t *testing.T) {
	if got := Shade("not-a-color", 0.5); got != "not-a-color" {
		t.Errorf("Shade(invalid) = %q", got)
	}
	darker := Shade(Signed, 0.6)
	if darker == Signed {
		t.Error("Shade(0.6) did not change the color")
	}
	if got := Shade(Signed, 1); got != Signed {
		t.Errorf("Shade(1) = %q, want %q", got, Signed)
	}
}

func TestMix(t *testing.T) {
	if got := Mix(Empty, Signed, 0); got != Empty {
		t.Errorf("Mix(t=0) = %q", got)
	}
	if got := Mix(Empty, Signed, 1); got != Signed {
		t.Errorf("Mix(t=1) = %q", got)
	}
	if got := Mix(Empty, "bogus", 0.5); got != Empty {
		t.Errorf("Mix(invalid) = %q", got)
	}
}
