/*
Package sapling grows decision trees over categorical data with the ID3
algorithm, prunes them with chi-squared significance tests and measures
their accuracy with leave-one-out cross-validation.

Rows are labelled "yes" or "no". A tree is grown by Grow, simplified by
Prune and evaluated with tree.Evaluate or a CrossValidator.
*/
package sapling

import (
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
)

/*
Grow takes a dataset and a slice of available features and returns the
decision tree induced from the dataset with them, or an error.

The tree is a leaf with the majority label of the dataset when no feature
is available or the dataset is empty, and a leaf with the shared label when
all rows have the same label. Otherwise the dataset is split on the feature
with the lowest SplitCost, the first one in the slice winning ties. Every
value in the domain of that feature gets a subtree, grown from the rows
taking the value with the remaining features. Values no row takes get a
leaf with the majority label of the dataset and no rows counted.

The given slice is not modified.
*/
func Grow(ds *dataset.Dataset, available []*feature.DiscreteFeature) (tree.Node, error) {
	tally := ds.Tally()
	if len(available) == 0 || tally.Total() == 0 {
		return tree.NewLeaf(tally), nil
	}
	if l, ok := ds.Homogeneous(); ok {
		return &tree.Leaf{Label: l, Tally: tally}, nil
	}
	var selected int
	var selectedCost float64
	for i, f := range available {
		cost, err := SplitCost(f, ds)
		if err != nil {
			return nil, err
		}
		if i == 0 || cost < selectedCost {
			selected = i
			selectedCost = cost
		}
	}
	f := available[selected]
	remaining := make([]*feature.DiscreteFeature, 0, len(available)-1)
	remaining = append(remaining, available[:selected]...)
	remaining = append(remaining, available[selected+1:]...)

	values := f.AvailableValues()
	n := &tree.Internal{Feature: f, Children: make(map[string]tree.Node, len(values))}
	for _, v := range values {
		subset, err := ds.SubsetWith(feature.NewDiscreteCriterion(f, v))
		if err != nil {
			return nil, err
		}
		if subset.Count() == 0 {
			n.Children[v] = &tree.Leaf{Label: tally.Majority()}
			continue
		}
		n.Children[v], err = Grow(subset, remaining)
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}

// GrowAll grows a tree from the dataset with all of its features, in
// field order.
func GrowAll(ds *dataset.Dataset) (tree.Node, error) {
	return Grow(ds, ds.Features())
}
