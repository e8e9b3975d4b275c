package sapling

import (
	"context"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/queue"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLeaveOneOutTwoRows(t *testing.T) {
	ds := newDataset(t, []string{"Weather"},
		row(dataset.Yes, "sun"),
		row(dataset.No, "rain"),
	)
	cv := &CrossValidator{}
	result, err := cv.LeaveOneOut(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, tree.Report{Incorrect: 2}, result.Unpruned)
	assert.Equal(t, tree.Report{Incorrect: 2}, result.Pruned)

	// each fold trains on the other row alone and predicts its label
	for i, held := range ds.Rows() {
		training, err := ds.Without(i)
		require.NoError(t, err)
		remaining := training.Rows()[0]
		var tally dataset.Tally
		tally.Count(remaining.Label)
		grown, err := GrowAll(training)
		require.NoError(t, err)
		assert.Equal(t, &tree.Leaf{Label: remaining.Label, Tally: tally}, grown, "fold %d", i)
		pruned, _ := Prune(grown, DefaultPruner())
		assert.Equal(t, grown, pruned, "fold %d", i)
		l, err := tree.Classify(grown, held)
		require.NoError(t, err)
		assert.NotEqual(t, held.Label, l, "fold %d", i)
	}
}

func TestLeaveOneOutPruningHurts(t *testing.T) {
	// every training set of three rows is split on Weather, but the split
	// is not significant, so pruned trees always predict the majority
	// label of the training set, which is the opposite of the held out one
	cv := &CrossValidator{}
	result, err := cv.LeaveOneOut(context.Background(), weatherDataset(t))
	require.NoError(t, err)
	assert.Equal(t, tree.Report{Correct: 4}, result.Unpruned)
	assert.Equal(t, tree.Report{Incorrect: 4}, result.Pruned)
	assert.Equal(t, 100.0, result.Unpruned.Percentage())
	assert.Equal(t, 0.0, result.Pruned.Percentage())
}

func TestLeaveOneOutWithNoPruner(t *testing.T) {
	cv := &CrossValidator{Pruner: NoPruner()}
	result, err := cv.LeaveOneOut(context.Background(), weatherDataset(t))
	require.NoError(t, err)
	assert.Equal(t, result.Unpruned, result.Pruned)
}

func TestLeaveOneOutRemovesByPosition(t *testing.T) {
	ds := newDataset(t, []string{"Weather"},
		row(dataset.Yes, "sun"),
		row(dataset.Yes, "sun"),
		row(dataset.Yes, "sun"),
		row(dataset.No, "rain"),
	)
	cv := &CrossValidator{Pruner: NoPruner()}
	result, err := cv.LeaveOneOut(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Unpruned.Total())
	assert.Equal(t, 4, result.Pruned.Total())
	// holding out one of the repeated rows leaves the other two to train
	// on, while holding out the only rain row leaves none
	assert.Equal(t, tree.Report{Correct: 3, Incorrect: 1}, result.Unpruned)
}

func TestLeaveOneOutIsIndependentOfWorkers(t *testing.T) {
	ds := tennisDataset(t)
	expected, err := (&CrossValidator{}).LeaveOneOut(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, ds.Count(), expected.Unpruned.Total())
	assert.Equal(t, ds.Count(), expected.Pruned.Total())
	for _, workers := range []int{2, 4, 20} {
		cv := &CrossValidator{Workers: workers}
		result, err := cv.LeaveOneOut(context.Background(), ds)
		require.NoError(t, err)
		assert.Equal(t, expected, result, "with %d workers", workers)
	}
}

func TestLeaveOneOutEmptyDataset(t *testing.T) {
	ds := newDataset(t, []string{"Weather"})
	result, err := (&CrossValidator{}).LeaveOneOut(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, &CrossValidation{}, result)
}

func TestLeaveOneOutCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&CrossValidator{Workers: 2}).LeaveOneOut(ctx, tennisDataset(t))
	assert.Error(t, err)
}

func TestLeaveOneOutLogsFolds(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cv := &CrossValidator{Logger: zap.New(core)}
	_, err := cv.LeaveOneOut(context.Background(), weatherDataset(t))
	require.NoError(t, err)
	assert.Equal(t, 4, logs.FilterMessage("fold evaluated").Len())
	assert.Equal(t, 1, logs.FilterMessage("cross-validation done").Len())
}

func TestLeaveOneOutOnGivenQueue(t *testing.T) {
	ctx := context.Background()
	q := queue.New()
	cv := &CrossValidator{Workers: 3, Queue: q}
	result, err := cv.LeaveOneOut(ctx, weatherDataset(t))
	require.NoError(t, err)
	assert.Equal(t, tree.Report{Correct: 4}, result.Unpruned)

	pending, running, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, pending)
	assert.Equal(t, 0, running)
	task, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Nil(t, task)
}

type failingDropQueue struct {
	queue.Queue
}

func (failingDropQueue) Drop(context.Context, string) error {
	return errors.New("connection lost")
}

func TestWorkReportsDropFailures(t *testing.T) {
	ctx := context.Background()
	q := failingDropQueue{queue.New()}
	require.NoError(t, q.Push(ctx, &queue.Task{Fold: 3}))
	foldErr := errors.New("fold failed")
	err := work(ctx, q, func(*queue.Task) error { return foldErr })
	require.Error(t, err)
	assert.Equal(t, foldErr, errors.Cause(err))
	assert.Contains(t, err.Error(), "dropping task 3")
	assert.Contains(t, err.Error(), "connection lost")
}

func TestWorkDropsFailedTasks(t *testing.T) {
	ctx := context.Background()
	q := queue.New()
	require.NoError(t, q.Push(ctx, &queue.Task{Fold: 0}))
	foldErr := errors.New("fold failed")
	err := work(ctx, q, func(*queue.Task) error { return foldErr })
	assert.Equal(t, foldErr, err)
	pending, running, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
	assert.Equal(t, 0, running)
}
