package session

import "context"

// Task is the handle for one in-flight request. A task settles exactly once;
// after Done is closed, Err reports how the request ended.
type Task struct {
	ID     string
	Stream Stream

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Done returns a channel that is closed when the request has settled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err reports how the task ended. It is only meaningful after Done is
// closed. A task whose failure was routed into the transcript or an alert
// still carries that failure here.
func (t *Task) Err() error {
	return t.err
}

// Cancel aborts the underlying request. The task still settles through its
// normal path, carrying the cancellation as a transport failure.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the task settles or ctx expires, and returns the task's
// error in the former case.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return t.err
	}
}

func (t *Task) finish(err error) {
	t.err = err
	t.cancel()
	close(t.done)
}
