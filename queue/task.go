package queue

import (
	"fmt"
	"strconv"
)

// Task represents a cross-validation fold to be
// evaluated: the row at index Fold of a dataset is
// held out, a tree is grown on the rest and the
// held-out row is classified with it.
type Task struct {
	Fold int
}

// ID returns a string that identifies the
// task, the index of its fold.
func (t *Task) ID() string {
	return strconv.Itoa(t.Fold)
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %d}", t.Fold)
}
