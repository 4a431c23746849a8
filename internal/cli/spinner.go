package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/progresstwin/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status on w until it is stopped or its
// context ends. The message can change while it runs.
type spinner struct {
	w       io.Writer
	cancel  context.CancelFunc
	stopped chan struct{}

	mu    sync.Mutex
	msg   string
	width int // widest line drawn so far, in runes
}

// startSpinner starts animating msg on w.
func startSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, msg: msg, cancel: cancel, stopped: make(chan struct{})}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

// SetMessage replaces the text shown next to the animation.
func (s *spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Message returns the current text.
func (s *spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) Stop() {
	s.cancel()
	<-s.stopped
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := utf8.RuneCountInString(s.msg) + 2
	pad := ""
	if n < s.width {
		pad = strings.Repeat(" ", s.width-n)
	} else {
		s.width = n
	}
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.msg), pad)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// =============================================================================
// Pipeline Stages
// =============================================================================

// stageReporter names the running pipeline stage on a spinner.
type stageReporter struct {
	observability.NoopPipelineHooks
	spinner *spinner
}

func (r stageReporter) OnLoadStart(_ context.Context, source string) {
	r.spinner.SetMessage(fmt.Sprintf("Loading %s...", source))
}

func (r stageReporter) OnSynthesizeStart(_ context.Context, structureID string, rows int) {
	r.spinner.SetMessage(fmt.Sprintf("Synthesizing %s from %d rows...", structureID, rows))
}

func (r stageReporter) OnRenderStart(_ context.Context, formats []string) {
	r.spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
}

// reportStages routes pipeline stage events to s until the returned
// function is called.
func reportStages(s *spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(stageReporter{spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}
