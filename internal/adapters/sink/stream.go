// Package sink implements the two output sink variants a job can stream
// to: a terminal-like raw stream and a structured problem list.
package sink

import (
	"io"
	"sync"

	"github.com/muesli/termenv"

	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/ui/output"
	"go.trai.ch/toil/internal/ui/style"
)

// Stream implements ports.Sink by forwarding raw chunks to a writer and
// appending one styled status line when the job reaches a terminal state.
type Stream struct {
	mu   sync.Mutex
	w    io.Writer
	out  *termenv.Output
	done bool
}

// NewStream creates a streaming sink over w.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		w:   w,
		out: output.New(w),
	}
}

// Write forwards one output chunk. Chunks arrive in order and are never
// reordered or buffered here.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return len(p), nil
	}
	return s.w.Write(p)
}

// Finish renders the terminal status. Cancelled renders differently from
// failed so the two stay distinguishable at a glance.
func (s *Stream) Finish(status domain.JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true

	var line termenv.Style
	switch status {
	case domain.JobCancelled:
		line = s.out.String(style.Tilde + " cancelled").Foreground(termenv.RGBColor(string(style.Yellow)))
	case domain.JobFailed:
		line = s.out.String(style.Cross + " failed").Foreground(termenv.RGBColor(string(style.Red)))
	default:
		line = s.out.String(style.Check + " done").Foreground(termenv.RGBColor(string(style.Green)))
	}

	_, _ = io.WriteString(s.w, "\n"+line.String()+"\n")
}
