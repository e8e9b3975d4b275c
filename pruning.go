package sapling

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/tree"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the confidence level of the chi-squared test
// applied by the DefaultPruner.
const DefaultConfidence = 0.95

/*
Pruner is an interface wrapping the Prune method, that can be used
to decide whether a split is significant enough to stay in a tree
or if it must be collapsed into a leaf instead.

The Prune method takes the tallies of training rows under each branch
of the split and returns a boolean: true to indicate the split must be
collapsed, false to keep it.
*/
type Pruner interface {
	Prune(parts []dataset.Tally) bool
}

/*
PrunerFunc wraps a function with the Prune method signature to implement
the Pruner interface
*/
type PrunerFunc func(parts []dataset.Tally) bool

/*
Prune takes the tallies of a split's branches and invokes the PrunerFunc
with them to return its boolean result.
*/
func (pf PrunerFunc) Prune(parts []dataset.Tally) bool {
	return pf(parts)
}

/*
ChiSquared takes the tallies under each branch of a split and returns
Pearson's chi-squared statistic for the association between branch and
label. Expected counts are derived from the proportion of yes labels over
all branches; branches with no expected yes or no rows contribute nothing.
*/
func ChiSquared(parts []dataset.Tally) float64 {
	var aggregate dataset.Tally
	for _, p := range parts {
		aggregate = aggregate.Add(p)
	}
	if aggregate.Total() == 0 {
		return 0
	}
	yesProb := float64(aggregate.Yes) / float64(aggregate.Total())
	var stat float64
	for _, p := range parts {
		n := float64(p.Total())
		expYes := yesProb * n
		expNo := (1 - yesProb) * n
		if expYes == 0 || expNo == 0 {
			continue
		}
		dYes := float64(p.Yes) - expYes
		dNo := float64(p.No) - expNo
		stat += dYes*dYes/expYes + dNo*dNo/expNo
	}
	return stat
}

/*
ChiSquaredPruner takes a confidence level in (0, 1) and returns a Pruner
whose Prune method collapses splits whose ChiSquared statistic is below
the critical value of the chi-squared distribution with len(parts)-1
degrees of freedom at that confidence. Splits over no rows or with a
single branch are always collapsed.

ChiSquaredPruner panics if the confidence is not strictly between 0 and 1.
*/
func ChiSquaredPruner(confidence float64) Pruner {
	if !(confidence > 0 && confidence < 1) {
		panic(fmt.Sprintf("chi-squared pruner confidence must be between 0 and 1, got %v", confidence))
	}
	return PrunerFunc(func(parts []dataset.Tally) bool {
		df := len(parts) - 1
		if df < 1 {
			return true
		}
		var total int
		for _, p := range parts {
			total += p.Total()
		}
		if total == 0 {
			return true
		}
		threshold := distuv.ChiSquared{K: float64(df)}.Quantile(confidence)
		return ChiSquared(parts) < threshold
	})
}

// DefaultPruner returns a ChiSquaredPruner at the DefaultConfidence.
func DefaultPruner() Pruner {
	return ChiSquaredPruner(DefaultConfidence)
}

/*
NoPruner returns a Pruner whose Prune method always returns false, that is,
never prunes.
*/
func NoPruner() Pruner {
	return PrunerFunc(func([]dataset.Tally) bool {
		return false
	})
}

/*
Prune takes a node and a Pruner and returns the tree rooted at the node
simplified by the pruner, along with the tally of training rows under it.

The tree is processed bottom-up: the children of an internal node are
pruned first and their tallies summed into the node's. The pruner is then
asked about the tallies of the children, and if it decides to collapse
the split, the node is replaced by a leaf with the majority label of the
summed tally. Leaves are returned as they are, with their own tally.

The given tree is not modified: nodes that change are rebuilt.
*/
func Prune(n tree.Node, p Pruner) (tree.Node, dataset.Tally) {
	switch t := n.(type) {
	case *tree.Leaf:
		return t, t.Tally
	case *tree.Internal:
		values := t.Feature.AvailableValues()
		pruned := &tree.Internal{Feature: t.Feature, Children: make(map[string]tree.Node, len(t.Children))}
		parts := make([]dataset.Tally, 0, len(t.Children))
		var aggregate dataset.Tally
		for _, v := range values {
			c, ok := t.Children[v]
			if !ok {
				continue
			}
			pc, ct := Prune(c, p)
			pruned.Children[v] = pc
			parts = append(parts, ct)
			aggregate = aggregate.Add(ct)
		}
		if p.Prune(parts) {
			return tree.NewLeaf(aggregate), aggregate
		}
		return pruned, aggregate
	default:
		panic(fmt.Sprintf("pruning unknown node type %T", n))
	}
}
