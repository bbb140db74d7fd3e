// Package runner owns the single tracked background job. At most one task
// runs at a time; starting a new one supersedes the old: the old job is
// cancelled and fully reaped before the new process spawns. The lifecycle is
// enforced by an explicit state machine so illegal transitions cannot occur.
package runner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/felixgeelhaar/statekit"
	"go.trai.ch/toil/internal/core/domain"
	"go.trai.ch/toil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Job lifecycle states. The state IDs mirror the domain.JobStatus values.
const (
	stateIdle      = "idle"
	stateStarting  = "starting"
	stateRunning   = "running"
	stateSucceeded = "succeeded"
	stateFailed    = "failed"
	stateCancelled = "cancelled"
)

const (
	eventStart   = "start"
	eventStarted = "started"
	eventSucceed = "succeed"
	eventFail    = "fail"
	eventCancel  = "cancel"
	eventReset   = "reset"
)

type jobContext struct{}

func newLifecycle() (*statekit.Interpreter[jobContext], error) {
	builder := statekit.NewMachine[jobContext]("job").
		WithInitial(stateIdle).
		WithContext(jobContext{})

	builder.State(stateIdle).
		On(eventStart).Target(stateStarting).
		Done()

	builder.State(stateStarting).
		On(eventStarted).Target(stateRunning).
		On(eventFail).Target(stateFailed).
		On(eventCancel).Target(stateCancelled).
		Done()

	builder.State(stateRunning).
		On(eventSucceed).Target(stateSucceeded).
		On(eventFail).Target(stateFailed).
		On(eventCancel).Target(stateCancelled).
		Done()

	// Terminal states return to idle once the job is reaped.
	for _, terminal := range []statekit.StateID{stateSucceeded, stateFailed, stateCancelled} {
		builder.State(terminal).
			On(eventReset).Target(stateIdle).
			Done()
	}

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build job lifecycle: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return interp, nil
}

// Job is a handle to one started task. Its channel closes when the job has
// been fully reaped: process exited, output drained, sink finished.
type Job struct {
	task      domain.TaskName
	done      chan struct{}
	cancelled atomic.Bool

	mu     sync.Mutex
	status domain.JobStatus
	proc   ports.Process
}

// Task returns the task name the job was started for.
func (j *Job) Task() domain.TaskName { return j.task }

// Done returns a channel closed once the job has been fully reaped.
func (j *Job) Done() <-chan struct{} { return j.done }

// Status returns the job's current lifecycle status. A cancelled job reports
// JobCancelled from the moment of cancellation, before the process exit is
// observed.
func (j *Job) Status() domain.JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

func (j *Job) setStatus(s domain.JobStatus) {
	j.mu.Lock()
	j.status = s
	j.mu.Unlock()
}

func (j *Job) process() ports.Process {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.proc
}

func (j *Job) setProcess(p ports.Process) {
	j.mu.Lock()
	j.proc = p
	j.mu.Unlock()
}

// Runner starts, tracks and cancels the single background job.
type Runner struct {
	executor ports.Executor
	logger   ports.Logger

	// startMu serializes Run calls so supersession is well ordered.
	startMu sync.Mutex

	mu        sync.Mutex
	lifecycle *statekit.Interpreter[jobContext]
	current   *Job
}

// New creates a runner.
func New(executor ports.Executor, logger ports.Logger) (*Runner, error) {
	lifecycle, err := newLifecycle()
	if err != nil {
		return nil, err
	}
	return &Runner{executor: executor, logger: logger, lifecycle: lifecycle}, nil
}

// Run starts cmd as the tracked job, streaming output to sink. A job already
// active is cancelled and reaped first, so its sink observes its terminal
// status before the new process produces any output. The returned job handle
// is live; the error covers spawn failure only.
func (r *Runner) Run(ctx context.Context, task domain.TaskName, cmd *domain.ResolvedCommand, sink ports.Sink) (*Job, error) {
	r.startMu.Lock()
	defer r.startMu.Unlock()

	if prev := r.Active(); prev != nil {
		r.logger.Info(fmt.Sprintf("superseding running %s task", prev.Task()))
		r.cancelJob(prev)
		<-prev.Done()
	}

	job := &Job{task: task, done: make(chan struct{}), status: domain.JobStarting}

	r.mu.Lock()
	r.send(eventStart)
	r.current = job
	r.mu.Unlock()

	proc, err := r.executor.Start(ctx, cmd, sink)
	if err != nil {
		r.finish(job, sink, domain.JobFailed)
		return nil, zerr.Wrap(err, "start task")
	}

	job.setProcess(proc)
	job.setStatus(domain.JobRunning)
	r.mu.Lock()
	r.send(eventStarted)
	r.mu.Unlock()

	go r.reap(job, proc, sink)
	go r.watch(ctx, job)

	return job, nil
}

// Active returns the current job while it owns a live process, nil otherwise.
func (r *Runner) Active() *Job {
	r.mu.Lock()
	job := r.current
	r.mu.Unlock()
	if job == nil || !job.Status().Active() {
		return nil
	}
	return job
}

// Status returns the lifecycle status of the tracked job, or JobIdle when no
// job has run yet.
func (r *Runner) Status() domain.JobStatus {
	r.mu.Lock()
	job := r.current
	r.mu.Unlock()
	if job == nil {
		return domain.JobIdle
	}
	return job.Status()
}

// Cancel cancels the active job, if any. It reports whether a job was
// actually cancelled. The job's status flips to JobCancelled immediately;
// the process exit is reaped asynchronously.
func (r *Runner) Cancel() bool {
	job := r.Active()
	if job == nil {
		return false
	}
	r.cancelJob(job)
	return true
}

func (r *Runner) cancelJob(job *Job) {
	if !job.cancelled.CompareAndSwap(false, true) {
		return
	}
	r.mu.Lock()
	r.send(eventCancel)
	r.mu.Unlock()
	job.setStatus(domain.JobCancelled)

	if proc := job.process(); proc != nil {
		if err := proc.Terminate(); err != nil {
			r.logger.Warn(fmt.Sprintf("failed to signal task process: %v", err))
		}
	}
}

// reap waits for the process exit and settles the job. A cancelled job stays
// cancelled no matter how the process exited.
func (r *Runner) reap(job *Job, proc ports.Process, sink ports.Sink) {
	err := proc.Wait()

	status := domain.JobSucceeded
	switch {
	case job.cancelled.Load():
		status = domain.JobCancelled
	case err != nil:
		status = domain.JobFailed
		r.logger.Warn(fmt.Sprintf("%s task exited with failure: %v", job.task, err))
	}
	r.finish(job, sink, status)
}

// watch cancels the job when the caller's context ends first.
func (r *Runner) watch(ctx context.Context, job *Job) {
	select {
	case <-ctx.Done():
		r.cancelJob(job)
	case <-job.done:
	}
}

func (r *Runner) finish(job *Job, sink ports.Sink, status domain.JobStatus) {
	r.mu.Lock()
	switch status {
	case domain.JobSucceeded:
		r.send(eventSucceed)
	case domain.JobCancelled:
		r.send(eventCancel)
	default:
		r.send(eventFail)
	}
	r.send(eventReset)
	r.mu.Unlock()

	if !job.cancelled.Load() {
		job.setStatus(status)
	}
	sink.Finish(job.Status())
	close(job.done)
}

// send dispatches a lifecycle event. Events invalid for the current state
// are ignored by the machine, which is exactly the semantics superseding and
// double-cancellation need. Callers hold r.mu.
func (r *Runner) send(event string) {
	r.lifecycle.Send(statekit.Event{Type: statekit.EventType(event)})
}
