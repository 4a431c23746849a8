package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/pipeline"
)

// stdout receives all command output; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorBlue   = lipgloss.Color("75")  // addresses, commands
	colorWhite  = lipgloss.Color("255") // paths
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for structure ids in headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for listen addresses and URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleWarning for warnings such as unresolved roles.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	stylePath        = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Messages
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+stylePath.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+value)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Render Stats
// =============================================================================

// printStats prints one line summarizing a pipeline run: scene size, which
// stages came from the cache, and the time spent computing the rest.
func printStats(stats pipeline.Stats, info pipeline.CacheInfo) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d rows", stats.RowCount)),
		StyleDim.Render(fmt.Sprintf("%d primitives", stats.PrimitiveCount)),
		StyleDim.Render(fmt.Sprintf("%d clickable", stats.ClickableCount)),
		stageState("scene", info.SceneHit),
		stageState("render", info.RenderHit),
	}
	if d := stats.LoadTime + stats.SynthTime + stats.RenderTime; d > 0 {
		parts = append(parts, StyleDim.Render(d.Round(time.Millisecond).String()))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func stageState(stage string, hit bool) string {
	if hit {
		return styleCached.Render(stage + " cached")
	}
	return styleComputed.Render(stage + " fresh")
}

// =============================================================================
// Status Rendering
// =============================================================================

// statusStyle colors text with the status palette.
func statusStyle(s matrix.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(palette.Of(s))))
}

// progressBar draws width cells split by status share, in lifecycle order.
func progressBar(counts map[matrix.Status]int, width int) string {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return StyleDim.Render(strings.Repeat("·", width))
	}

	var b strings.Builder
	cum, drawn := 0, 0
	for _, s := range matrix.Statuses {
		cum += counts[s]
		cells := cum*width/total - drawn
		if cells <= 0 {
			continue
		}
		drawn += cells
		b.WriteString(statusStyle(s).Render(strings.Repeat("█", cells)))
	}
	return b.String()
}

// legendLine renders the status legend on one line.
func legendLine() string {
	parts := make([]string, 0, len(matrix.Statuses))
	for _, e := range palette.Legend() {
		parts = append(parts, statusStyle(e.Status).Render("█")+" "+StyleDim.Render(strings.ToLower(string(e.Status))))
	}
	return strings.Join(parts, "  ")
}
