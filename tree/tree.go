package tree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

/*
Classify takes a node and a sample and walks the tree rooted at the node
following the sample's values until a leaf is reached, returning its label.
It returns an *UnknownValueError if the sample holds a value for which a
node has no branch.
*/
func Classify(n Node, s feature.Sample) (dataset.Label, error) {
	for {
		switch t := n.(type) {
		case *Leaf:
			return t.Label, nil
		case *Internal:
			v, err := s.ValueFor(t.Feature)
			if err != nil {
				return "", err
			}
			n, err = t.Child(v)
			if err != nil {
				return "", err
			}
		default:
			return "", errors.Errorf("classifying sample: %s", unknownNode(n))
		}
	}
}

/*
Walk takes a node and a function and calls the function with every node
of the tree rooted at the given one, parents before children and children
in the order of their feature's domain. If the function returns an error
the walk is aborted and the error returned.
*/
func Walk(n Node, f func(Node) error) error {
	if err := f(n); err != nil {
		return err
	}
	in, ok := n.(*Internal)
	if !ok {
		return nil
	}
	for _, v := range in.Feature.AvailableValues() {
		c, ok := in.Children[v]
		if !ok {
			continue
		}
		if err := Walk(c, f); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the number of nodes in the tree rooted at n.
func Size(n Node) int {
	var size int
	Walk(n, func(Node) error {
		size++
		return nil
	})
	return size
}

// Depth returns the number of internal nodes on the longest path from n
// to a leaf.
func Depth(n Node) int {
	in, ok := n.(*Internal)
	if !ok {
		return 0
	}
	var max int
	for _, c := range in.Children {
		if d := Depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

/*
Fprint writes the tree rooted at n to w, one line per branch. Branches are
written as "feature = value", indented with "|\t" once per ancestor, and
followed by ": label (yes/no)" when they lead to a leaf.
*/
func Fprint(w io.Writer, n Node) error {
	if l, ok := n.(*Leaf); ok {
		_, err := fmt.Fprintf(w, ": %s (%v)\n", l.Label, l.Tally)
		return err
	}
	return fprint(w, n, 0)
}

func fprint(w io.Writer, n Node, depth int) error {
	switch t := n.(type) {
	case *Leaf:
		_, err := fmt.Fprintf(w, ": %s (%v)\n", t.Label, t.Tally)
		return err
	case *Internal:
		if depth > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, v := range t.Feature.AvailableValues() {
			c, ok := t.Children[v]
			if !ok {
				continue
			}
			_, err := fmt.Fprintf(w, "%s%s = %s", strings.Repeat("|\t", depth), t.Feature.Name(), v)
			if err != nil {
				return err
			}
			if err = fprint(w, c, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("printing tree: %s", unknownNode(n))
	}
}

// String returns the tree rooted at n as written by Fprint.
func String(n Node) string {
	var buf bytes.Buffer
	if err := Fprint(&buf, n); err != nil {
		return fmt.Sprintf("ERROR: %v\n", err)
	}
	return buf.String()
}
