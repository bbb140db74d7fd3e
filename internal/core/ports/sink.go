package ports

import (
	"io"

	"go.trai.ch/toil/internal/core/domain"
)

// Sink consumes a job's output: an ordered, append-only sequence of chunks
// followed by exactly one terminal status. Two variants exist, a streaming
// terminal-like sink and a structured problem list.
//
//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks
type Sink interface {
	io.Writer

	// Finish reports the job's terminal status. Cancelled must stay
	// distinguishable from failed in whatever the sink renders.
	Finish(status domain.JobStatus)
}
