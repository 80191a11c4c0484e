package app

import "time"

// Operation statuses.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation tracks one CLI command from start to finish. Its ID tags every
// log line written while it runs.
type Operation struct {
	ID         string
	Name       string
	Status     string
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewOperation creates a running operation. The ID is the start time in UTC.
func NewOperation(name string, startedAt time.Time) *Operation {
	return &Operation{
		ID:        startedAt.UTC().Format("20060102T150405.000Z"),
		Name:      name,
		Status:    StatusRunning,
		StartedAt: startedAt,
	}
}

// Fail records err as the outcome. The first failure wins.
func (op *Operation) Fail(err error) {
	if op.Status == StatusError {
		return
	}
	op.Status = StatusError
	op.Err = err
}

// Finish stamps the end time. An operation that has not failed succeeded.
func (op *Operation) Finish(at time.Time) {
	if op.Status == StatusRunning {
		op.Status = StatusSuccess
	}
	op.FinishedAt = at
}

// Finished returns true once Finish has been called.
func (op *Operation) Finished() bool {
	return !op.FinishedAt.IsZero()
}

// Duration is the time between start and finish, or zero while running.
func (op *Operation) Duration() time.Duration {
	if !op.Finished() {
		return 0
	}
	return op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond)
}
