package sapling

import (
	"context"
	"sync"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/queue"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CrossValidation holds the accuracy measured by a cross-validation
// for trees as grown and for trees after pruning.
type CrossValidation struct {
	Unpruned tree.Report
	Pruned   tree.Report
}

/*
CrossValidator measures the accuracy of growing and pruning trees on a
dataset with leave-one-out cross-validation.
*/
type CrossValidator struct {
	// Pruner simplifies every grown tree. Defaults to DefaultPruner().
	Pruner Pruner
	// Workers is the number of folds evaluated concurrently.
	// Defaults to 1.
	Workers int
	// Logger receives debug messages on fold progress. Defaults to
	// a no-op logger.
	Logger *zap.Logger
	// Queue holds the folds to evaluate while workers pull them. It must
	// be empty. Defaults to a new in-memory queue, stopped on return.
	Queue queue.Queue
}

type foldResult struct {
	unpruned bool
	pruned   bool
}

/*
LeaveOneOut takes a context and a dataset and, for every row in it, grows
a tree from all the other rows, prunes it and classifies the held-out row
with both trees. It returns the accumulated reports for unpruned and pruned
trees, or an error if a fold fails or the context is cancelled.

Folds are independent, so they are distributed on a queue among the
configured number of workers. The result does not depend on it.
*/
func (cv *CrossValidator) LeaveOneOut(ctx context.Context, ds *dataset.Dataset) (*CrossValidation, error) {
	pruner := cv.Pruner
	if pruner == nil {
		pruner = DefaultPruner()
	}
	workers := cv.Workers
	if workers < 1 {
		workers = 1
	}
	logger := cv.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	q := cv.Queue
	if q == nil {
		q = queue.New()
		defer q.Stop(context.Background())
	}
	for i := 0; i < ds.Count(); i++ {
		if err := q.Push(ctx, &queue.Task{Fold: i}); err != nil {
			return nil, err
		}
	}

	results := make([]foldResult, ds.Count())
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			err := work(ctx, q, func(task *queue.Task) error {
				r, err := evaluateFold(ds, task.Fold, pruner)
				if err != nil {
					return errors.Wrapf(err, "fold %d", task.Fold)
				}
				results[task.Fold] = r
				logger.Debug("fold evaluated",
					zap.Int("worker", w),
					zap.Int("fold", task.Fold),
					zap.Bool("unprunedCorrect", r.unpruned),
					zap.Bool("prunedCorrect", r.pruned))
				return nil
			})
			if err != nil {
				cancel()
				errs <- err
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	var firstErr error
	for err := range errs {
		if firstErr == nil || errors.Cause(firstErr) == context.Canceled {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &CrossValidation{}
	for _, r := range results {
		result.Unpruned.Record(r.unpruned)
		result.Pruned.Record(r.pruned)
	}
	logger.Debug("cross-validation done",
		zap.Int("folds", len(results)),
		zap.Stringer("unpruned", result.Unpruned),
		zap.Stringer("pruned", result.Pruned))
	return result, nil
}

func evaluateFold(ds *dataset.Dataset, fold int, p Pruner) (foldResult, error) {
	training, err := ds.Without(fold)
	if err != nil {
		return foldResult{}, err
	}
	held := ds.Rows()[fold]
	grown, err := GrowAll(training)
	if err != nil {
		return foldResult{}, err
	}
	pruned, _ := Prune(grown, p)
	ul, err := tree.Classify(grown, held)
	if err != nil {
		return foldResult{}, err
	}
	pl, err := tree.Classify(pruned, held)
	if err != nil {
		return foldResult{}, err
	}
	return foldResult{unpruned: ul == held.Label, pruned: pl == held.Label}, nil
}

/*
work enters a loop in which it pulls a task from the queue, runs f with
it and marks it as completed, until the queue has no more tasks to pull.
If f fails the task is dropped back to the queue and the error returned,
annotated with the drop error if dropping fails too.
It also returns if the context is cancelled or a queue operation fails.
*/
func work(ctx context.Context, q queue.Queue, f func(*queue.Task) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		if err = f(task); err != nil {
			if derr := q.Drop(ctx, task.ID()); derr != nil {
				return errors.Wrapf(err, "dropping task %s back to the queue failed (%v)", task.ID(), derr)
			}
			return err
		}
		if err = q.Complete(ctx, task.ID()); err != nil {
			return err
		}
	}
}
