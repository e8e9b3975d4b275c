/*
Package json encodes decision trees as JSON documents and decodes them
back against a feature registry.

A tree is serialized as a JSON object for its root node. Leaves are
objects with the fields "l" (label), "y" and "n" (yes and no counts).
Internal nodes are objects with the fields "f" (the name of the feature
they split on) and "c", an array of branches in the order of the
feature's domain, each an object with the fields "v" (the value) and
"n" (the node under it).
*/
package json

import (
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type NodeEncodeDecoder interface {

	//Encode receives a tree.Node
	//and returns a slice of bytes with the tree
	//rooted at it encoded or an error if the encoding
	//could not be performed for some reason.
	Encode(tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (tree.Node, error)
}

type nodeEncodeDecoder struct {
	registry *feature.Registry
	extend   bool
}

type node struct {
	Feature  string   `json:"f,omitempty"`
	Children []branch `json:"c,omitempty"`
	Label    string   `json:"l,omitempty"`
	Yes      int      `json:"y,omitempty"`
	No       int      `json:"n,omitempty"`
}

type branch struct {
	Value string `json:"v"`
	Node  *node  `json:"n"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that resolves the
features of decoded internal nodes by name on the given registry.
Decoded internal nodes must have a branch for every value in the domain
of their feature, and for no other value.
*/
func NewNodeEncodeDecoder(r *feature.Registry) NodeEncodeDecoder {
	return &nodeEncodeDecoder{registry: r}
}

/*
NewExtendingNodeEncodeDecoder returns a NodeEncodeDecoder like the one
returned by NewNodeEncodeDecoder, except that the branch values of decoded
internal nodes are added to the domain of their feature unless it was
declared. Use it to load trees before the rows they will classify.

If the registry is nil, every decoded tree gets a new registry for the
features it splits on, in the order they are found, with the branch values
of the tree as domains.
*/
func NewExtendingNodeEncodeDecoder(r *feature.Registry) NodeEncodeDecoder {
	return &nodeEncodeDecoder{registry: r, extend: true}
}

func (ned *nodeEncodeDecoder) Encode(n tree.Node) ([]byte, error) {
	jn, err := encode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshalling tree")
	}
	if ned.registry == nil {
		r, err := feature.NewRegistry(featureNames(jn, nil, map[string]bool{}))
		if err != nil {
			return nil, errors.Wrap(err, "decoding tree")
		}
		return (&nodeEncodeDecoder{registry: r, extend: true}).decode(jn)
	}
	return ned.decode(jn)
}

func featureNames(jn *node, names []string, seen map[string]bool) []string {
	if jn == nil || jn.Feature == "" {
		return names
	}
	if !seen[jn.Feature] {
		seen[jn.Feature] = true
		names = append(names, jn.Feature)
	}
	for _, b := range jn.Children {
		names = featureNames(b.Node, names, seen)
	}
	return names
}

func encode(n tree.Node) (*node, error) {
	switch t := n.(type) {
	case *tree.Leaf:
		return &node{Label: string(t.Label), Yes: t.Tally.Yes, No: t.Tally.No}, nil
	case *tree.Internal:
		jn := &node{Feature: t.Feature.Name()}
		for _, v := range t.Feature.AvailableValues() {
			c, ok := t.Children[v]
			if !ok {
				return nil, errors.Errorf("encoding node on %s: no child for value %s", t.Feature.Name(), v)
			}
			jc, err := encode(c)
			if err != nil {
				return nil, err
			}
			jn.Children = append(jn.Children, branch{v, jc})
		}
		return jn, nil
	default:
		return nil, errors.Errorf("encoding unknown node type %T", n)
	}
}

func (ned *nodeEncodeDecoder) decode(jn *node) (tree.Node, error) {
	if jn == nil {
		return nil, errors.New("decoding node: missing node")
	}
	if jn.Feature == "" {
		l, err := dataset.ParseLabel(jn.Label)
		if err != nil {
			return nil, errors.Wrap(err, "decoding leaf")
		}
		return &tree.Leaf{Label: l, Tally: dataset.Tally{Yes: jn.Yes, No: jn.No}}, nil
	}
	f, ok := ned.registry.Feature(jn.Feature)
	if !ok {
		return nil, errors.Errorf("decoding node: unknown feature %s", jn.Feature)
	}
	in := &tree.Internal{Feature: f, Children: make(map[string]tree.Node, len(jn.Children))}
	if ned.extend && !ned.registry.Sealed(f.Name()) {
		for _, b := range jn.Children {
			f.Add(b.Value)
		}
	}
	for _, b := range jn.Children {
		if _, err := f.Valid(b.Value); err != nil {
			return nil, errors.Wrapf(err, "decoding node on %s", f.Name())
		}
		if _, ok := in.Children[b.Value]; ok {
			return nil, errors.Errorf("decoding node on %s: repeated branch for value %s", f.Name(), b.Value)
		}
		c, err := ned.decode(b.Node)
		if err != nil {
			return nil, err
		}
		in.Children[b.Value] = c
	}
	if len(in.Children) != len(f.AvailableValues()) {
		return nil, errors.Errorf("decoding node on %s: expected %d branches, got %d", f.Name(), len(f.AvailableValues()), len(in.Children))
	}
	return in, nil
}

/*
WriteJSONTree takes an io.Writer and a tree.Node and serializes the
tree rooted at the node as JSON onto the writer.
*/
func WriteJSONTree(w io.Writer, n tree.Node) error {
	jn, err := encode(n)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(jn)
}

/*
ReadJSONTree takes an io.Reader and a feature registry and returns
the tree unmarshalled from the contents of the reader, with its
features resolved on the registry. An error is returned if the JSON
cannot be read or does not describe a tree over the registry's features,
with one branch per domain value on every internal node.
*/
func ReadJSONTree(r io.Reader, reg *feature.Registry) (tree.Node, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading tree")
	}
	return NewNodeEncodeDecoder(reg).Decode(data)
}
