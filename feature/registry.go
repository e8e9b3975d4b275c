package feature

import (
	"github.com/pkg/errors"
)

/*
Registry holds the features rows are described by, in the order their
values appear on rows, along with the domain of each of them.
*/
type Registry struct {
	features []*DiscreteFeature
	byName   map[string]*DiscreteFeature
	// sealed registries reject values outside the domains they were
	// created with instead of extending them.
	sealed map[string]bool
}

/*
NewRegistry takes the names of the features in field order and returns a
registry with an empty domain for each of them or an error if a name is
empty or repeated.
*/
func NewRegistry(fieldOrder []string) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*DiscreteFeature),
		sealed: make(map[string]bool),
	}
	for i, name := range fieldOrder {
		if name == "" {
			return nil, errors.Errorf("feature at column %d has no name", i)
		}
		if _, ok := r.byName[name]; ok {
			return nil, errors.Errorf("feature %s is defined more than once", name)
		}
		f := NewDiscreteFeature(name, i, nil)
		r.features = append(r.features, f)
		r.byName[name] = f
	}
	return r, nil
}

/*
Declare takes a feature name and the values it may take and fixes the
domain of the feature to them: observing any other value for the feature
afterwards is an error. It returns an error if the feature is unknown.
*/
func (r *Registry) Declare(name string, values []string) error {
	f, ok := r.byName[name]
	if !ok {
		return errors.Errorf("declaring domain of unknown feature %s", name)
	}
	for _, v := range values {
		f.Add(v)
	}
	r.sealed[name] = true
	return nil
}

/*
Observe takes the attribute values of a row in field order and inserts
each of them into the domain of the corresponding feature. It returns an
error if the number of values does not match the number of features or
a value falls outside a declared domain, in which case no domain is
extended.
*/
func (r *Registry) Observe(values []string) error {
	if len(values) != len(r.features) {
		return errors.Errorf("expected %d values, got %d", len(r.features), len(values))
	}
	for i, v := range values {
		f := r.features[i]
		if !r.sealed[f.name] {
			continue
		}
		if _, err := f.Valid(v); err != nil {
			return err
		}
	}
	for i, v := range values {
		f := r.features[i]
		if !r.sealed[f.name] {
			f.Add(v)
		}
	}
	return nil
}

// Sealed returns whether the domain of the named feature was declared.
func (r *Registry) Sealed(name string) bool {
	return r.sealed[name]
}

// Features returns a copy of the slice of features in field order.
func (r *Registry) Features() []*DiscreteFeature {
	return append([]*DiscreteFeature(nil), r.features...)
}

// Feature returns the feature with the given name, if any.
func (r *Registry) Feature(name string) (*DiscreteFeature, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Len returns the number of features in the registry.
func (r *Registry) Len() int {
	return len(r.features)
}

// FieldOrder returns the names of the features in field order.
func (r *Registry) FieldOrder() []string {
	names := make([]string, 0, len(r.features))
	for _, f := range r.features {
		names = append(names, f.name)
	}
	return names
}
