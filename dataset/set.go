/*
Package dataset defines the rows classifiers learn from and the datasets
that group them along with the registry of their features.
*/
package dataset

import (
	"fmt"

	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

/*
ArityError is returned when a row does not have one value per feature
plus a label.
*/
type ArityError struct {
	// Line is the 1-based line or record number of the row, 0 if unknown
	Line     int
	Expected int
	Got      int
}

func (ae *ArityError) Error() string {
	if ae.Line > 0 {
		return fmt.Sprintf("line %d: expected %d columns, got %d", ae.Line, ae.Expected, ae.Got)
	}
	return fmt.Sprintf("expected %d columns, got %d", ae.Expected, ae.Got)
}

/*
Dataset represents a collection of rows sharing a feature registry.
Subsetting a dataset returns a filtered copy, it never modifies the
dataset it is called on.
*/
type Dataset struct {
	registry *feature.Registry
	rows     []Row
}

/*
New takes the feature names in field order and a slice of rows, builds
the registry of features by inserting every row value into the domain
of its feature and returns a dataset with them, or an error if a row
does not have exactly one value per feature.
*/
func New(fieldOrder []string, rows []Row) (*Dataset, error) {
	r, err := feature.NewRegistry(fieldOrder)
	if err != nil {
		return nil, err
	}
	return NewWithRegistry(r, rows)
}

/*
NewWithRegistry takes a registry and a slice of rows, observes the
values of every row on the registry and returns a dataset with them.
It returns an error if a row does not have one value per feature in
the registry, holds a value outside a declared domain or has a label
other than yes or no.
*/
func NewWithRegistry(r *feature.Registry, rows []Row) (*Dataset, error) {
	for i, row := range rows {
		if len(row.Values) != r.Len() {
			return nil, &ArityError{Line: i + 1, Expected: r.Len() + 1, Got: len(row.Values) + 1}
		}
		if _, err := ParseLabel(string(row.Label)); err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		if err := r.Observe(row.Values); err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
	}
	return &Dataset{r, rows}, nil
}

// Registry returns the registry of features for the dataset.
func (s *Dataset) Registry() *feature.Registry {
	return s.registry
}

// Features returns the features of the dataset in field order.
func (s *Dataset) Features() []*feature.DiscreteFeature {
	return s.registry.Features()
}

// Rows returns the rows in the dataset. The slice must not be modified.
func (s *Dataset) Rows() []Row {
	return s.rows
}

// Count returns the number of rows in the dataset.
func (s *Dataset) Count() int {
	return len(s.rows)
}

// Tally counts the rows of the dataset by label.
func (s *Dataset) Tally() Tally {
	var t Tally
	for _, r := range s.rows {
		t.Count(r.Label)
	}
	return t
}

/*
Homogeneous returns the label shared by all rows in the dataset and true,
or an empty label and false if the dataset is empty or holds rows with
different labels.
*/
func (s *Dataset) Homogeneous() (Label, bool) {
	if len(s.rows) == 0 {
		return "", false
	}
	l := s.rows[0].Label
	for _, r := range s.rows[1:] {
		if r.Label != l {
			return "", false
		}
	}
	return l, true
}

/*
SubsetWith takes a feature.Criterion and returns a dataset sharing the
registry of this one with only the rows that satisfy it.
*/
func (s *Dataset) SubsetWith(fc feature.Criterion) (*Dataset, error) {
	var rows []Row
	for _, r := range s.rows {
		ok, err := fc.SatisfiedBy(r)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, r)
		}
	}
	return &Dataset{s.registry, rows}, nil
}

/*
Without returns a dataset sharing the registry of this one with all its
rows except the one at index i. Rows equal to the removed one stay.
*/
func (s *Dataset) Without(i int) (*Dataset, error) {
	if i < 0 || i >= len(s.rows) {
		return nil, errors.Errorf("row index %d out of range [0, %d)", i, len(s.rows))
	}
	rows := make([]Row, 0, len(s.rows)-1)
	rows = append(rows, s.rows[:i]...)
	rows = append(rows, s.rows[i+1:]...)
	return &Dataset{s.registry, rows}, nil
}

/*
Table holds rows as they are read from some source along with the
names of their features in field order, before a registry is built
for them.
*/
type Table struct {
	FieldOrder []string
	Rows       []Row
}

/*
Dataset builds a registry for the table's field order, lets the given
declare function (if not nil) declare domains on it and returns a
dataset with the table's rows on that registry.
*/
func (t *Table) Dataset(declare func(*feature.Registry) error) (*Dataset, error) {
	r, err := feature.NewRegistry(t.FieldOrder)
	if err != nil {
		return nil, err
	}
	if declare != nil {
		if err = declare(r); err != nil {
			return nil, err
		}
	}
	return NewWithRegistry(r, t.Rows)
}

/*
AppendRecord takes the raw values of a record, its attribute values
followed by its label, parses them into a row and appends it to the
table. The line is used to report errors.
*/
func (t *Table) AppendRecord(line int, record []string) error {
	if len(record) != len(t.FieldOrder)+1 {
		return &ArityError{Line: line, Expected: len(t.FieldOrder) + 1, Got: len(record)}
	}
	l, err := ParseLabel(record[len(record)-1])
	if err != nil {
		return errors.Wrapf(err, "line %d", line)
	}
	values := append([]string(nil), record[:len(record)-1]...)
	t.Rows = append(t.Rows, Row{Values: values, Label: l})
	return nil
}
