package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// quietSpinner returns a spinner writing to buf with animation forced.
func quietSpinner(ctx context.Context, animate bool) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, "Rendering svg...")
	s.out = &buf
	s.animate = animate
	return s, &buf
}

func TestSpinnerOutput(t *testing.T) {
	tests := []struct {
		name    string
		animate bool
		want    bool // frames written
	}{
		{"terminal draws frames", true, true},
		{"no terminal stays silent", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buf := quietSpinner(context.Background(), tt.animate)
			s.Start()
			time.Sleep(200 * time.Millisecond)
			s.Stop()

			out := buf.String()
			if !tt.want {
				if out != "" {
					t.Errorf("spinner wrote %q off a terminal", out)
				}
				return
			}
			if !strings.Contains(out, s.frames[0]) || !strings.Contains(out, "Rendering svg...") {
				t.Errorf("output %q lacks the first frame or message", out)
			}
			if !strings.HasSuffix(out, "\r") {
				t.Errorf("output %q does not end with a cleared line", out)
			}
		})
	}
}

func TestSpinnerCancelledByContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
		stop func(context.CancelFunc)
	}{
		{
			name: "cancel",
			ctx:  func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			stop: func(cancel context.CancelFunc) { cancel() },
		},
		{
			name: "timeout",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 50*time.Millisecond)
			},
			stop: func(context.CancelFunc) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s, _ := quietSpinner(ctx, false)
			s.Start()
			tt.stop(cancel)
			time.Sleep(100 * time.Millisecond)

			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, buf := quietSpinner(context.Background(), true)
	s.Start()
	s.Stop()
	n := buf.Len()
	s.Stop()
	s.Stop()
	if buf.Len() <= n {
		return
	}
	// repeated stops may only clear the line again
	if extra := buf.String()[n:]; strings.Trim(extra, " \r") != "" {
		t.Errorf("repeated Stop wrote %q", extra)
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	s, buf := quietSpinner(context.Background(), false)
	s.Start()
	s.StopWithError("Render failed")
	if buf.Len() != 0 {
		t.Errorf("silent spinner wrote %q", buf.String())
	}
}
