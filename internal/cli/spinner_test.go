package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/progresstwin/pkg/observability"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Loading site.json...")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if !strings.Contains(out.String(), "Loading site.json...") {
		t.Errorf("output %q lacks the message", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("Stop should clear the line")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &syncBuffer{}, "working")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after cancel")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "working")
	s.Stop()
	s.Stop()
}

func TestSpinnerPadsShorterMessage(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Synthesizing K-101 from 5 rows...")
	time.Sleep(2 * spinnerInterval)
	s.SetMessage("Rendering svg...")
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	s.mu.Lock()
	width := s.width
	s.mu.Unlock()
	if want := len("Synthesizing K-101 from 5 rows...") + 2; width != want {
		t.Errorf("width = %d, want %d", width, want)
	}
}

func TestReportStages(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "Starting...")
	defer s.Stop()

	restore := reportStages(s)
	ctx := context.Background()
	hooks := observability.Pipeline()

	tests := []struct {
		fire func()
		want string
	}{
		{func() { hooks.OnLoadStart(ctx, "site.xlsx") }, "Loading site.xlsx..."},
		{func() { hooks.OnSynthesizeStart(ctx, "K-101", 5) }, "Synthesizing K-101 from 5 rows..."},
		{func() { hooks.OnRenderStart(ctx, []string{"svg", "json"}) }, "Rendering svg, json..."},
	}
	for _, tt := range tests {
		tt.fire()
		if got := s.Message(); got != tt.want {
			t.Errorf("Message() = %q, want %q", got, tt.want)
		}
	}

	restore()
	if _, ok := observability.Pipeline().(stageReporter); ok {
		t.Error("restore should reinstate the previous hooks")
	}
}
