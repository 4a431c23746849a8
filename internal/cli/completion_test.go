package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteStructures(t *testing.T) {
	c := newTestCLI(t)
	cmd := &cobra.Command{}

	got, directive := c.completeStructures(cmd, []string{testDataset}, "K")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}
	if len(got) != 1 || !strings.HasPrefix(got[0], "K-101\t") {
		t.Errorf("completions = %q, want K-101 with its name", got)
	}

	if got, _ := c.completeStructures(cmd, []string{"missing.json"}, ""); got != nil {
		t.Errorf("unreadable dataset should give no completions, got %q", got)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"s", []string{"svg", "schematic"}},
		{"svg,", []string{"svg,json", "svg,schematic", "svg,png", "svg,pdf", "svg,cbor"}},
		{"json,svg,P", []string{"json,svg,png", "json,svg,pdf"}},
		{"x", nil},
	}
	for _, tt := range tests {
		got, _ := completeFormats(nil, nil, tt.in)
		if !slices.Equal(got, tt.want) {
			t.Errorf("completeFormats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
