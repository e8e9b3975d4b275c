/*
Package redisq provides an implementation of queue.Queue that keeps
its tasks on a Redis database.
*/
package redisq

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/pbanos/sapling/queue"
	"github.com/pkg/errors"
	redis "gopkg.in/redis.v5"
)

type redisQ struct {
	id      string
	rc      *redis.Client
	lock    sync.RWMutex
	stopped bool
}

/*
New returns a queue.Queue that uses the given redis client as a
backend. It uses the given id to prefix the keys used on the
redis client to keep the queue's data, which are the following:
  * id:pending is the key to a list with the IDs of the pending tasks,
  pushed on its head and pulled from its tail.
  * id:running is the key to a list with the IDs of the running tasks.

Tasks are stored as their IDs, which hold all their data. Stopping the
queue deletes both keys.

The returned queue is secure for concurrent use by multiple goroutines.
*/
func New(id string, rc *redis.Client) queue.Queue {
	return &redisQ{id: id, rc: rc}
}

func (rq *redisQ) Push(ctx context.Context, t *queue.Task) error {
	if err := rq.check(ctx); err != nil {
		return err
	}
	if err := rq.rc.LPush(rq.pendingListKey(), t.ID()).Err(); err != nil {
		return errors.Wrapf(err, "pushing task %s to queue %s", t.ID(), rq.id)
	}
	return nil
}

func (rq *redisQ) Pull(ctx context.Context) (*queue.Task, error) {
	if err := rq.check(ctx); err != nil {
		return nil, err
	}
	id, err := rq.rc.RPopLPush(rq.pendingListKey(), rq.runningListKey()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pulling task from queue %s", rq.id)
	}
	fold, err := strconv.Atoi(id)
	if err != nil {
		return nil, errors.Wrapf(err, "pulling task from queue %s: invalid task ID %q", rq.id, id)
	}
	return &queue.Task{Fold: fold}, nil
}

func (rq *redisQ) Drop(ctx context.Context, id string) error {
	if err := rq.check(ctx); err != nil {
		return err
	}
	removed, err := rq.rc.LRem(rq.runningListKey(), 1, id).Result()
	if err != nil {
		return errors.Wrapf(err, "dropping task %s on queue %s", id, rq.id)
	}
	if removed == 0 {
		return nil
	}
	if err = rq.rc.LPush(rq.pendingListKey(), id).Err(); err != nil {
		return errors.Wrapf(err, "dropping task %s on queue %s", id, rq.id)
	}
	return nil
}

func (rq *redisQ) Complete(ctx context.Context, id string) error {
	if err := rq.check(ctx); err != nil {
		return err
	}
	if err := rq.rc.LRem(rq.runningListKey(), 1, id).Err(); err != nil {
		return errors.Wrapf(err, "completing task %s on queue %s", id, rq.id)
	}
	return nil
}

func (rq *redisQ) Count(ctx context.Context) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	pending, err := rq.rc.LLen(rq.pendingListKey()).Result()
	if err != nil {
		return 0, 0, errors.Wrapf(err, "counting pending tasks on queue %s", rq.id)
	}
	running, err := rq.rc.LLen(rq.runningListKey()).Result()
	if err != nil {
		return 0, 0, errors.Wrapf(err, "counting running tasks on queue %s", rq.id)
	}
	return int(pending), int(running), nil
}

func (rq *redisQ) Stop(ctx context.Context) error {
	rq.lock.Lock()
	rq.stopped = true
	rq.lock.Unlock()
	if err := rq.rc.Del(rq.pendingListKey(), rq.runningListKey()).Err(); err != nil {
		return errors.Wrapf(err, "stopping queue %s", rq.id)
	}
	return nil
}

func (rq *redisQ) String() string {
	return fmt.Sprintf("{RedisQueue %s}", rq.id)
}

// check returns an error if the context is done or the queue stopped.
func (rq *redisQ) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rq.lock.RLock()
	defer rq.lock.RUnlock()
	if rq.stopped {
		return queue.ErrStopped
	}
	return nil
}

func (rq *redisQ) pendingListKey() string {
	return fmt.Sprintf("%s:pending", rq.id)
}

func (rq *redisQ) runningListKey() string {
	return fmt.Sprintf("%s:running", rq.id)
}
