/*
Package yaml provides methods to parse feature domain declarations,
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata maps feature names to the list of values they are declared
to take.
*/
type Metadata map[string][]string

/*
ReadMetadata takes a slice of bytes with feature domain declarations in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object containing a features property. The value for this
should be an object with a property for each feature with its name and a
list of valid values.
*/
func ReadMetadata(md []byte) (Metadata, error) {
	metadata := struct {
		Features map[string]interface{}
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml features")
	}
	if metadata.Features == nil {
		return nil, errors.New("metadata file has no feature information")
	}
	result := make(Metadata)
	for fn, vs := range metadata.Features {
		values, ok := vs.([]interface{})
		if !ok {
			return nil, errors.Errorf("invalid declaration of type %T for feature %s: expected a list of values", vs, fn)
		}
		stringVs := make([]string, 0, len(values))
		for _, v := range values {
			stringVs = append(stringVs, fmt.Sprintf("%v", v))
		}
		result[fn] = stringVs
	}
	return result, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
*/
func ReadMetadataFromFile(filepath string) (Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading features yml file %s", filepath)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = errors.Wrapf(err, "parsing features yml file %s", filepath)
	}
	return metadata, err
}

/*
Apply declares on the given registry the domain of every feature in the
metadata. It returns an error if the metadata refers to a feature the
registry does not know about.
*/
func (m Metadata) Apply(r *feature.Registry) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.Declare(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}
