package shell_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/toil/internal/adapters/shell"
	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports/mocks"
)

// syncBuffer guards concurrent writes from the pty copy loop.
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

func newExecutor(t *testing.T) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return shell.NewExecutor(log)
}

func TestStart_MultiLineOutput(t *testing.T) {
	executor := newExecutor(t)
	var out syncBuffer

	proc, err := executor.Start(context.Background(), &domain.ResolvedCommand{
		Args: []string{"sh", "-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
	}, &out)
	require.NoError(t, err)
	require.NoError(t, proc.Wait())

	output := out.String()
	assert.Contains(t, output, "line1")
	assert.Contains(t, output, "line2")
}

func TestStart_MergesStderrIntoStream(t *testing.T) {
	executor := newExecutor(t)
	var out syncBuffer

	proc, err := executor.Start(context.Background(), &domain.ResolvedCommand{
		Args: []string{"sh", "-c", "echo to-stdout; echo to-stderr 1>&2"},
		Dir:  t.TempDir(),
	}, &out)
	require.NoError(t, err)
	require.NoError(t, proc.Wait())

	output := out.String()
	assert.Contains(t, output, "to-stdout")
	assert.Contains(t, output, "to-stderr")
}

func TestStart_EnvironmentOverlay(t *testing.T) {
	executor := newExecutor(t)
	var out syncBuffer

	proc, err := executor.Start(context.Background(), &domain.ResolvedCommand{
		Args: []string{"sh", "-c", "echo $TOIL_TEST_VAR"},
		Dir:  t.TempDir(),
		Env:  map[string]string{"TOIL_TEST_VAR": "overlay-value-42"},
	}, &out)
	require.NoError(t, err)
	require.NoError(t, proc.Wait())

	assert.Contains(t, out.String(), "overlay-value-42")
}

func TestStart_NonZeroExitCarriesCode(t *testing.T) {
	executor := newExecutor(t)

	proc, err := executor.Start(context.Background(), &domain.ResolvedCommand{
		Args: []string{"sh", "-c", "exit 3"},
		Dir:  t.TempDir(),
	}, io.Discard)
	require.NoError(t, err)

	err = proc.Wait()
	require.Error(t, err)
}

func TestStart_MissingExecutable(t *testing.T) {
	executor := newExecutor(t)

	_, err := executor.Start(context.Background(), &domain.ResolvedCommand{
		Args: []string{"toil-no-such-binary-xyz"},
		Dir:  t.TempDir(),
	}, io.Discard)
	assert.ErrorIs(t, err, domain.ErrSpawnFailed)
}

func TestStart_EmptyCommand(t *testing.T) {
	executor := newExecutor(t)

	_, err := executor.Start(context.Background(), &domain.ResolvedCommand{}, io.Discard)
	assert.ErrorIs(t, err, domain.ErrEmptyCommand)

	_, err = executor.Start(context.Background(), nil, io.Discard)
	assert.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestTerminate_StopsLongRunningProcess(t *testing.T) {
	executor := newExecutor(t)

	proc, err := executor.Start(context.Background(), &domain.ResolvedCommand{
		Args: []string{"sleep", "30"},
		Dir:  t.TempDir(),
	}, io.Discard)
	require.NoError(t, err)

	require.NoError(t, proc.Terminate())

	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()

	select {
	case err := <-done:
		assert.Error(t, err, "SIGTERM exit is reported as failure")
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit after Terminate")
	}
}

func TestStart_OutputDrainedBeforeWaitReturns(t *testing.T) {
	executor := newExecutor(t)
	var out syncBuffer

	proc, err := executor.Start(context.Background(), &domain.ResolvedCommand{
		Args: []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"},
		Dir:  t.TempDir(),
	}, &out)
	require.NoError(t, err)
	require.NoError(t, proc.Wait())

	// Wait only returns after the copy loop drained the pty.
	output := out.String()
	assert.Contains(t, output, "part1")
	assert.Contains(t, output, "part2")
}
