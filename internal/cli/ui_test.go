package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/progresstwin/pkg/pipeline"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name string
		info pipeline.CacheInfo
		want []string
	}{
		{"fresh", pipeline.CacheInfo{}, []string{"scene fresh", "render fresh"}},
		{"scene hit", pipeline.CacheInfo{SceneHit: true}, []string{"scene cached", "render fresh"}},
		{"all hits", pipeline.CacheInfo{SceneHit: true, RenderHit: true}, []string{"scene cached", "render cached"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			stats := pipeline.Stats{
				RowCount:       5,
				PrimitiveCount: 315,
				ClickableCount: 240,
				SynthTime:      12 * time.Millisecond,
			}
			printStats(stats, tt.info)

			line := out.String()
			for _, want := range append([]string{"5 rows", "315 primitives", "240 clickable", "12ms"}, tt.want...) {
				if !strings.Contains(line, want) {
					t.Errorf("stats line %q lacks %q", line, want)
				}
			}
		})
	}
}

func TestPrintStatsOmitsZeroDuration(t *testing.T) {
	out := captureStdout(t)
	printStats(pipeline.Stats{}, pipeline.CacheInfo{SceneHit: true, RenderHit: true})
	if strings.Contains(out.String(), "0s") {
		t.Errorf("fully cached run should not print a duration: %q", out.String())
	}
}

func TestPrintFile(t *testing.T) {
	out := captureStdout(t)
	printFile("K-101.svg")
	if !strings.Contains(out.String(), "K-101.svg") {
		t.Errorf("output = %q", out.String())
	}
}
