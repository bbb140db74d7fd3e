package sink

import (
	"bytes"
	"strings"
	"sync"

	"go.trai.ch/toil/internal/core/domain"
)

// Entry is one line of job output in the problem list.
type Entry struct {
	Text string
}

// Problems implements ports.Sink by collecting output into discrete line
// entries plus a final status entry carrying a literal marker, the shape a
// quickfix-style host consumes.
type Problems struct {
	mu      sync.Mutex
	buf     []byte
	entries []Entry
	status  domain.JobStatus
	done    bool
}

// NewProblems creates an empty problem list sink.
func NewProblems() *Problems {
	return &Problems{status: domain.JobRunning}
}

// Write buffers chunks and emits one entry per completed line. Partial
// lines wait for their newline; pty carriage returns are stripped.
func (p *Problems) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return len(b), nil
	}

	p.buf = append(p.buf, b...)
	for {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		p.appendLine(p.buf[:i])
		p.buf = p.buf[i+1:]
	}
	return len(b), nil
}

// Finish flushes any partial line and appends the final status entry. The
// cancelled marker is distinct from the failed one.
func (p *Problems) Finish(status domain.JobStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.done = true
	p.status = status

	if len(p.buf) > 0 {
		p.appendLine(p.buf)
		p.buf = nil
	}

	p.entries = append(p.entries, Entry{Text: Marker(status)})
}

func (p *Problems) appendLine(line []byte) {
	text := strings.TrimSuffix(string(line), "\r")
	p.entries = append(p.entries, Entry{Text: text})
}

// Entries returns the collected entries so far.
func (p *Problems) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Status returns the reported terminal status, or running before Finish.
func (p *Problems) Status() domain.JobStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Marker renders the literal final-status marker for a terminal state.
func Marker(status domain.JobStatus) string {
	switch status {
	case domain.JobCancelled:
		return "[cancelled]"
	case domain.JobFailed:
		return "[failed]"
	default:
		return "[done]"
	}
}
