/*
Package inputsample provides an implementation of feature.Sample whose
values are read from an io.Reader as they are needed, so that only the
features a tree asks about have to be answered.
*/
package inputsample

import (
	"bufio"
	"io"
	"strings"

	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

// ErrNoMoreInput is returned when the reader ends before a valid value
// for a feature is read.
var ErrNoMoreInput = errors.New("EOF when requesting value")

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(*feature.DiscreteFeature) error
	RejectValueFor(*feature.DiscreteFeature, string) error
}

type readSample struct {
	obtainedValues        map[string]string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
}

/*
New takes an io.Reader and a FeatureValueRequester and returns a
feature.Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader, one per line, with surrounding
whitespace trimmed. Lines are read until one holds a value in the domain
of the feature; other values are rejected with the FeatureValueRequester's
RejectValueFor method. Values are only requested once per feature.
*/
func New(r io.Reader, featureValueRequester FeatureValueRequester) feature.Sample {
	return &readSample{make(map[string]string), bufio.NewScanner(r), featureValueRequester}
}

func (rs *readSample) ValueFor(f *feature.DiscreteFeature) (string, error) {
	if value, ok := rs.obtainedValues[f.Name()]; ok {
		return value, nil
	}
	err := rs.featureValueRequester.RequestValueFor(f)
	if err != nil {
		return "", err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if ok, _ := f.Valid(line); ok {
			rs.obtainedValues[f.Name()] = line
			return line, nil
		}
		if err = rs.featureValueRequester.RejectValueFor(f, line); err != nil {
			return "", err
		}
	}
	if err = rs.scanner.Err(); err != nil {
		return "", errors.Wrapf(err, "reading value for %s", f.Name())
	}
	return "", errors.Wrapf(ErrNoMoreInput, "reading value for %s", f.Name())
}
