package dataset

import (
	"fmt"
	"strings"

	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

// Label is the binary class a row belongs to.
type Label string

const (
	// Yes is the positive label
	Yes Label = "yes"
	// No is the negative label
	No Label = "no"
)

// ErrInvalidLabel is returned, wrapped with the offending value, when a
// label other than "yes" or "no" is parsed.
var ErrInvalidLabel = errors.New("invalid label")

/*
ParseLabel takes a string and returns the Label it represents or an
error wrapping ErrInvalidLabel if it is neither "yes" nor "no". Parsing
is case-sensitive.
*/
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case Yes:
		return Yes, nil
	case No:
		return No, nil
	}
	return "", errors.Wrapf(ErrInvalidLabel, "%q", s)
}

/*
Row represents an item from which to learn or to classify: an ordered
sequence of attribute values followed by a label. Rows are not modified
once loaded.
*/
type Row struct {
	Values []string
	Label  Label
}

// ValueFor returns the value of the row for the given feature, read from
// the feature's column.
func (r Row) ValueFor(f *feature.DiscreteFeature) (string, error) {
	c := f.Column()
	if c < 0 || c >= len(r.Values) {
		return "", errors.Errorf("row has no column %d for feature %s", c, f.Name())
	}
	return r.Values[c], nil
}

func (r Row) String() string {
	return fmt.Sprintf("[%s %s]", strings.Join(r.Values, " "), r.Label)
}

// Tally counts rows by label.
type Tally struct {
	Yes int
	No  int
}

// Count adds one to the count for the given label.
func (t *Tally) Count(l Label) {
	if l == Yes {
		t.Yes++
	} else {
		t.No++
	}
}

// Add returns the sum of both tallies.
func (t Tally) Add(o Tally) Tally {
	return Tally{t.Yes + o.Yes, t.No + o.No}
}

// Total returns the number of rows counted.
func (t Tally) Total() int {
	return t.Yes + t.No
}

// Majority returns the most frequent label. Ties resolve to Yes.
func (t Tally) Majority() Label {
	if t.Yes >= t.No {
		return Yes
	}
	return No
}

// Pure reports whether at most one of the labels has been counted.
func (t Tally) Pure() bool {
	return t.Yes == 0 || t.No == 0
}

func (t Tally) String() string {
	return fmt.Sprintf("%d/%d", t.Yes, t.No)
}
