/*
Package tree defines decision trees, how they classify samples and how
they are rendered, measured and stored.
*/
package tree

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Node is a node of a decision tree, and the tree rooted at it. It is
either a *Leaf or an *Internal node; no other implementations exist.
*/
type Node interface {
	node()
}

/*
Leaf is a terminal node holding a decision and the tally of training
rows that reached it.
*/
type Leaf struct {
	Label dataset.Label
	Tally dataset.Tally
}

/*
Internal is a node that splits samples on a feature. It has exactly
one child per value in the domain of the feature.
*/
type Internal struct {
	Feature  *feature.DiscreteFeature
	Children map[string]Node
}

func (*Leaf) node()     {}
func (*Internal) node() {}

// NewLeaf returns a leaf with the majority label of the given tally.
func NewLeaf(t dataset.Tally) *Leaf {
	return &Leaf{Label: t.Majority(), Tally: t}
}

/*
Child returns the node under n for the given value of its feature or an
*UnknownValueError if there is none.
*/
func (n *Internal) Child(value string) (Node, error) {
	c, ok := n.Children[value]
	if !ok {
		return nil, &UnknownValueError{Feature: n.Feature.Name(), Value: value}
	}
	return c, nil
}

// UnknownValueError is returned when classifying a sample whose value
// for a feature was not in its domain when the tree was grown.
type UnknownValueError struct {
	Feature string
	Value   string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("no branch for value %q of feature %s", e.Value, e.Feature)
}

func unknownNode(n Node) string {
	return fmt.Sprintf("unknown node type %T", n)
}
