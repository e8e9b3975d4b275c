package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemQueue(t *testing.T) {
	ctx := context.Background()
	q := New()
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Push(ctx, &Task{Fold: i}))
	}
	pending, running, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, pending)
	assert.Equal(t, 0, running)

	first, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Fold)
	second, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Fold)

	pending, running, err = q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
	assert.Equal(t, 2, running)

	require.NoError(t, q.Drop(ctx, first.ID()))
	require.NoError(t, q.Complete(ctx, second.ID()))
	pending, running, err = q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)
	assert.Equal(t, 0, running)

	var folds []int
	for {
		task, err := q.Pull(ctx)
		require.NoError(t, err)
		if task == nil {
			break
		}
		folds = append(folds, task.Fold)
		require.NoError(t, q.Complete(ctx, task.ID()))
	}
	assert.Equal(t, []int{2, 0}, folds)

	pending, running, err = q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, pending)
	assert.Equal(t, 0, running)
}

func TestMemQueueStop(t *testing.T) {
	ctx := context.Background()
	q := New()
	require.NoError(t, q.Push(ctx, &Task{Fold: 0}))
	require.NoError(t, q.Stop(ctx))
	_, err := q.Pull(ctx)
	assert.Equal(t, ErrStopped, err)
}

func TestMemQueueCancelledContext(t *testing.T) {
	q := New()
	require.NoError(t, q.Push(context.Background(), &Task{Fold: 0}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.Pull(ctx)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, context.Canceled, q.Push(ctx, &Task{Fold: 1}))

	pending, running, err := q.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
	assert.Equal(t, 0, running)
}
