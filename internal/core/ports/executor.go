package ports

import (
	"context"
	"io"

	"go.trai.ch/toil/internal/core/domain"
)

// Process is a handle to a spawned child process.
type Process interface {
	// Wait blocks until the process exits and its output has been drained.
	// A non-zero exit is reported as an error carrying the exit code.
	Wait() error

	// Terminate asks the process to stop. It does not wait for the exit to
	// be observed.
	Terminate() error
}

// Executor spawns resolved commands as child processes.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Start launches the command and streams its combined output to the
	// given writer as it arrives. It returns domain.ErrSpawnFailed when the
	// executable is missing or cannot be started.
	Start(ctx context.Context, cmd *domain.ResolvedCommand, output io.Writer) (Process, error)
}
