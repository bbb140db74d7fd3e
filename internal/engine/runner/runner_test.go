package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/toil/internal/adapters/shell"
	"go.trai.ch/toil/internal/adapters/sink"
	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports/mocks"
	"go.trai.ch/toil/internal/engine/runner"
)

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	r, err := runner.New(shell.NewExecutor(log), log)
	require.NoError(t, err)
	return r
}

func shellCmd(t *testing.T, script string) *domain.ResolvedCommand {
	t.Helper()
	return &domain.ResolvedCommand{
		Args: []string{"sh", "-c", script},
		Dir:  t.TempDir(),
	}
}

func waitDone(t *testing.T, job *runner.Job) {
	t.Helper()
	select {
	case <-job.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("job did not finish")
	}
}

func lastEntry(t *testing.T, p *sink.Problems) string {
	t.Helper()
	entries := p.Entries()
	require.NotEmpty(t, entries)
	return entries[len(entries)-1].Text
}

func TestRun_Success(t *testing.T) {
	r := newRunner(t)
	p := sink.NewProblems()

	job, err := r.Run(context.Background(), domain.TaskBuild, shellCmd(t, "echo compiling; exit 0"), p)
	require.NoError(t, err)
	waitDone(t, job)

	assert.Equal(t, domain.JobSucceeded, job.Status())
	assert.Equal(t, domain.TaskBuild, job.Task())
	assert.Equal(t, "[done]", lastEntry(t, p))
	assert.False(t, r.Status().Active())
}

func TestRun_NonZeroExitFails(t *testing.T) {
	r := newRunner(t)
	p := sink.NewProblems()

	job, err := r.Run(context.Background(), domain.TaskTest, shellCmd(t, "echo boom; exit 2"), p)
	require.NoError(t, err)
	waitDone(t, job)

	assert.Equal(t, domain.JobFailed, job.Status())
	assert.Equal(t, "[failed]", lastEntry(t, p))
}

func TestRun_SpawnFailure(t *testing.T) {
	r := newRunner(t)
	p := sink.NewProblems()

	_, err := r.Run(context.Background(), domain.TaskBuild, &domain.ResolvedCommand{
		Args: []string{"toil-no-such-binary-xyz"},
		Dir:  t.TempDir(),
	}, p)
	require.Error(t, err)

	assert.Equal(t, domain.JobFailed, r.Status())
	assert.Equal(t, "[failed]", lastEntry(t, p))
}

func TestCancel_MarksJobCancelledNotFailed(t *testing.T) {
	r := newRunner(t)
	p := sink.NewProblems()

	job, err := r.Run(context.Background(), domain.TaskRun, shellCmd(t, "sleep 30"), p)
	require.NoError(t, err)

	require.True(t, r.Cancel())
	// Cancellation is visible immediately, before the exit is reaped.
	assert.Equal(t, domain.JobCancelled, job.Status())

	waitDone(t, job)
	assert.Equal(t, domain.JobCancelled, job.Status())
	assert.Equal(t, "[cancelled]", lastEntry(t, p))
}

func TestCancel_NoActiveJob(t *testing.T) {
	r := newRunner(t)

	assert.False(t, r.Cancel())
	assert.Equal(t, domain.JobIdle, r.Status())
}

func TestCancel_Twice(t *testing.T) {
	r := newRunner(t)
	p := sink.NewProblems()

	job, err := r.Run(context.Background(), domain.TaskRun, shellCmd(t, "sleep 30"), p)
	require.NoError(t, err)

	require.True(t, r.Cancel())
	assert.False(t, r.Cancel(), "second cancel finds no active job")

	waitDone(t, job)
	assert.Equal(t, domain.JobCancelled, job.Status())
}

func TestRun_SupersedesActiveJob(t *testing.T) {
	r := newRunner(t)
	first := sink.NewProblems()
	second := sink.NewProblems()

	old, err := r.Run(context.Background(), domain.TaskRun, shellCmd(t, "sleep 30"), first)
	require.NoError(t, err)

	job, err := r.Run(context.Background(), domain.TaskBuild, shellCmd(t, "echo fresh"), second)
	require.NoError(t, err)

	// The old job was fully reaped before the new one spawned.
	select {
	case <-old.Done():
	default:
		t.Fatal("superseded job still live after new Run returned")
	}
	assert.Equal(t, domain.JobCancelled, old.Status())
	assert.Equal(t, "[cancelled]", lastEntry(t, first))

	waitDone(t, job)
	assert.Equal(t, domain.JobSucceeded, job.Status())
	assert.Equal(t, "[done]", lastEntry(t, second))
}

func TestRun_ContextCancellation(t *testing.T) {
	r := newRunner(t)
	p := sink.NewProblems()
	ctx, cancel := context.WithCancel(context.Background())

	job, err := r.Run(ctx, domain.TaskRun, shellCmd(t, "sleep 30"), p)
	require.NoError(t, err)

	cancel()
	waitDone(t, job)

	assert.Equal(t, domain.JobCancelled, job.Status())
	assert.Equal(t, "[cancelled]", lastEntry(t, p))
}

func TestRunner_SequentialJobs(t *testing.T) {
	r := newRunner(t)

	for i := 0; i < 3; i++ {
		p := sink.NewProblems()
		job, err := r.Run(context.Background(), domain.TaskBuild, shellCmd(t, "true"), p)
		require.NoError(t, err)
		waitDone(t, job)
		assert.Equal(t, domain.JobSucceeded, job.Status())
	}
}
