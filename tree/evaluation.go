package tree

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pkg/errors"
)

// Report holds the outcome of classifying a set of rows.
type Report struct {
	Correct   int
	Incorrect int
}

// Total returns the number of rows classified.
func (r Report) Total() int {
	return r.Correct + r.Incorrect
}

// Percentage returns the percentage of rows correctly classified, 0 when
// no row was classified.
func (r Report) Percentage() float64 {
	if r.Total() == 0 {
		return 0
	}
	return 100 * float64(r.Correct) / float64(r.Total())
}

// Add returns the sum of both reports.
func (r Report) Add(o Report) Report {
	return Report{r.Correct + o.Correct, r.Incorrect + o.Incorrect}
}

// Record counts one classification, correct or not.
func (r *Report) Record(correct bool) {
	if correct {
		r.Correct++
	} else {
		r.Incorrect++
	}
}

func (r Report) String() string {
	return fmt.Sprintf("%d correct, %d incorrect (%.2f%%)", r.Correct, r.Incorrect, r.Percentage())
}

/*
Evaluate takes a node and a slice of rows, classifies every row with the
tree rooted at the node and returns a report comparing the results with
the rows' labels. It returns an error if any row cannot be classified.
*/
func Evaluate(n Node, rows []dataset.Row) (Report, error) {
	var r Report
	for i, row := range rows {
		l, err := Classify(n, row)
		if err != nil {
			return Report{}, errors.Wrapf(err, "classifying row %d", i+1)
		}
		r.Record(l == row.Label)
	}
	return r, nil
}
