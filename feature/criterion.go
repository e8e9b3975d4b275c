package feature

import (
	"fmt"
)

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the feature
passed as parameter.
*/
type Sample interface {
	ValueFor(*DiscreteFeature) (string, error)
}

/*
Criterion represents a constraint on a feature

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the given value satisfies the feature criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() *DiscreteFeature
	SatisfiedBy(sample Sample) (bool, error)
}

/*
DiscreteCriterion represents a constraint on a discrete feature, a
value it may take.

Its Value method returns the value to which the feature is constrained as
a string.
*/
type DiscreteCriterion interface {
	Criterion
	Value() string
}

type discreteCriterion struct {
	feature *DiscreteFeature
	value   string
}

/*
NewDiscreteCriterion takes a DiscreteFeature feature and a value string
and returns a DiscreteCriterion satisfied by samples taking that value
for the feature.
*/
func NewDiscreteCriterion(feature *DiscreteFeature, value string) DiscreteCriterion {
	return &discreteCriterion{feature, value}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (dfc *discreteCriterion) Feature() *DiscreteFeature {
	return dfc.feature
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion, that is, if its value for the feature equals the
value on the criterion.
*/
func (dfc *discreteCriterion) SatisfiedBy(sample Sample) (bool, error) {
	val, err := sample.ValueFor(dfc.feature)
	if err != nil {
		return false, err
	}
	return dfc.value == val, nil
}

func (dfc *discreteCriterion) Value() string {
	return dfc.value
}

func (dfc *discreteCriterion) String() string {
	return fmt.Sprintf("%s = %s", dfc.feature.Name(), dfc.value)
}
