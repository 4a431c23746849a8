// Package cli implements the progresstwin command-line interface.
//
// Commands load a progress matrix (JSON, TOML, XLSX or MongoDB), synthesize
// the twin of one structure and render it, inspect role resolution and
// chainage layout, serve the HTTP API, or browse progress interactively.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: Write a structure's scene as JSON, CBOR, SVG, PNG, PDF or schematic
//   - roles: Print how bridge columns resolve to structural roles
//   - layout: Print chainage offsets of a structure's rows
//   - serve: Run the HTTP API
//   - browse: Pick a structure interactively and inspect its progress
//   - export: Convert a dataset between JSON and XLSX
//   - cache: Manage the scene and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded site/progress.xlsx (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
