/*
Package feature defines the categorical attributes rows are described
by, the registry holding their domains and the criteria used to select
rows by attribute value.
*/
package feature

import (
	"github.com/pkg/errors"
)

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite set, its domain. It also records the column
that holds its value on rows.
*/
type DiscreteFeature struct {
	name            string
	column          int
	availableValues []string
	index           map[string]struct{}
}

/*
NewDiscreteFeature takes a name string, the column of the feature in
rows and a slice of available value strings and returns a discrete
feature with them. Repeated values are only kept once.
*/
func NewDiscreteFeature(name string, column int, availableValues []string) *DiscreteFeature {
	df := &DiscreteFeature{name: name, column: column, index: make(map[string]struct{})}
	for _, v := range availableValues {
		df.Add(v)
	}
	return df
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

// Column returns the index of the row column holding the feature's value.
func (df *DiscreteFeature) Column() int {
	return df.column
}

/*
AvailableValues returns a string slice with the values available for the
feature in the order they were first added. The slice must not be modified.
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

// Add inserts value in the domain of the feature and reports whether
// it was not there already.
func (df *DiscreteFeature) Add(value string) bool {
	if _, ok := df.index[value]; ok {
		return false
	}
	df.index[value] = struct{}{}
	df.availableValues = append(df.availableValues, value)
	return true
}

/*
Valid receives a value and returns a boolean and an error. When the
value is included in the available values of the feature, the method
returns true and nil. Otherwise it returns false and an error describing the
reason.
*/
func (df *DiscreteFeature) Valid(value string) (bool, error) {
	if _, ok := df.index[value]; ok {
		return true, nil
	}
	return false, errors.Errorf("discrete feature %s got unknown value %s", df.name, value)
}

func (df *DiscreteFeature) String() string {
	return df.name
}
