package domain

// JobStatus is the lifecycle state of the single tracked background job.
type JobStatus string

const (
	// JobIdle means no job is tracked.
	JobIdle JobStatus = "idle"
	// JobStarting means the child process is being spawned.
	JobStarting JobStatus = "starting"
	// JobRunning means the child process is executing.
	JobRunning JobStatus = "running"
	// JobSucceeded means the child exited with code zero.
	JobSucceeded JobStatus = "succeeded"
	// JobFailed means the child exited non-zero or failed to spawn.
	JobFailed JobStatus = "failed"
	// JobCancelled means the user cancelled the job. Cancellation is not a
	// failure and stays distinguishable from JobFailed downstream.
	JobCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status is a terminal state.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobSucceeded, JobFailed, JobCancelled:
		return true
	default:
		return false
	}
}

// Active reports whether a job in this status owns a live child process.
func (s JobStatus) Active() bool {
	return s == JobStarting || s == JobRunning
}
