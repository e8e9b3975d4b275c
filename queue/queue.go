package queue

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrStopped is returned when pulling tasks from a stopped queue.
var ErrStopped = errors.New("queue stopped")

// Queue represents a queue where cross-validation
// tasks can be pushed and pulled. The idea
// is a worker will use the Pull method to obtain
// a task. It will start processing it and will then
// either complete it or drop it halfway.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error. The task will count as pending.
	Push(context.Context, *Task) error
	// Pull returns a task or an error. The pulled task
	// will be counted as running from then on.
	// If there are no tasks to pull, implementations
	// should not return an error, but 2 nil values.
	Pull(context.Context) (*Task, error)
	// Drop takes the ID for a tasks an makes it available
	// for pulling from the Queue again. The dropped task
	// should be count by implementations as pending
	// again, unless it has been previously completed.
	// Workers should use this to return to the queue
	// tasks they have not completed.
	Drop(context.Context, string) error
	// Complete takes the ID for a task. Implementations
	// should remove the task from the running state.
	Complete(context.Context, string) error
	// Count returns the number of
	// pending and running tasks in the queue
	// or an error
	Count(context.Context) (int, int, error)
	// Stop stops the queue. Implementations should use the
	// call to free resources. Pulling from a stopped queue
	// returns ErrStopped.
	Stop(context.Context) error
}

type memQueue struct {
	mu      sync.Mutex
	pending []*Task
	running map[string]*Task
	stopped bool
}

// New returns a queue backed only by the process memory
func New() Queue {
	return &memQueue{running: make(map[string]*Task)}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.do(ctx, func() error {
		mq.pending = append(mq.pending, t)
		return nil
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, error) {
	var task *Task
	err := mq.do(ctx, func() error {
		if mq.stopped {
			return ErrStopped
		}
		if len(mq.pending) == 0 {
			return nil
		}
		task = mq.pending[0]
		mq.pending[0] = nil
		mq.pending = mq.pending[1:]
		mq.running[task.ID()] = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Drop puts a running task back at the end of the pending tasks.
func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.do(ctx, func() error {
		if t, ok := mq.running[id]; ok {
			delete(mq.running, id)
			mq.pending = append(mq.pending, t)
		}
		return nil
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.do(ctx, func() error {
		delete(mq.running, id)
		return nil
	})
}

func (mq *memQueue) Count(ctx context.Context) (pending int, running int, err error) {
	err = mq.do(ctx, func() error {
		pending, running = len(mq.pending), len(mq.running)
		return nil
	})
	return
}

func (mq *memQueue) Stop(ctx context.Context) error {
	return mq.do(ctx, func() error {
		mq.stopped = true
		return nil
	})
}

// do runs f holding the queue's lock unless ctx is already done.
func (mq *memQueue) do(ctx context.Context, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.mu.Lock()
	defer mq.mu.Unlock()
	return f()
}
