package sapling

import (
	"math"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

/*
SplitCost takes a feature and a dataset and returns the cost of splitting
the dataset on the feature. Lower costs make better splits.

Rows are tallied by label into one bucket per value in the domain of the
feature. A pure bucket, one whose rows all share a label (or an empty one),
costs the number of rows in it. A mixed bucket with n rows costs
n * (pYes*log2(1/pYes) + pNo*log2(1/pNo)). The cost of the split is the
sum of the cost of its buckets.

An error is returned if a row holds a value outside the feature's domain.
*/
func SplitCost(f *feature.DiscreteFeature, ds *dataset.Dataset) (float64, error) {
	values := f.AvailableValues()
	buckets := make(map[string]*dataset.Tally, len(values))
	for _, v := range values {
		buckets[v] = &dataset.Tally{}
	}
	for _, r := range ds.Rows() {
		v, err := r.ValueFor(f)
		if err != nil {
			return 0, err
		}
		b, ok := buckets[v]
		if !ok {
			return 0, errors.Errorf("computing split cost on %s: value %s outside its domain", f.Name(), v)
		}
		b.Count(r.Label)
	}
	var cost float64
	for _, v := range values {
		cost += bucketCost(*buckets[v])
	}
	return cost, nil
}

func bucketCost(t dataset.Tally) float64 {
	n := float64(t.Total())
	if t.Pure() {
		return n
	}
	pYes := float64(t.Yes) / n
	pNo := float64(t.No) / n
	return n * (pYes*math.Log2(1/pYes) + pNo*math.Log2(1/pNo))
}
