package command

import (
	"context"
	"sync"
)

// Runner serializes bookkeeping for async commands: a busy flag while any
// command is in flight and the message of the most recent failure. The slot is
// shared by every command on the owning service, so overlapping commands
// overwrite each other's outcome. Last write wins.
type Runner struct {
	mu        sync.Mutex
	inFlight  int
	lastError string
}

func NewRunner() *Runner {
	return &Runner{}
}

// Execute runs fn, tracking the in-flight state and recording the outcome.
// A success clears the recorded error; a failure records it and returns the
// error unchanged to the caller. The in-flight count is decremented in a
// defer, so a panicking command cannot leave the runner busy.
func (r *Runner) Execute(ctx context.Context, fn func(ctx context.Context) error) (err error) {

	r.mu.Lock()
	r.inFlight++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.inFlight--

		if err != nil {
			r.lastError = err.Error()
		} else {
			r.lastError = ""
		}

		r.mu.Unlock()
	}()

	return fn(ctx)
}

type Status struct {
	Busy      bool   `json:"busy"`
	LastError string `json:"last_error,omitempty"`
}

// Status reports whether any command is in flight and the last recorded error.
func (r *Runner) Status() Status {

	r.mu.Lock()
	defer r.mu.Unlock()

	return Status{
		Busy:      r.inFlight > 0,
		LastError: r.lastError,
	}
}
