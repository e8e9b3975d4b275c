/*
Package mongodataset reads and writes tables of rows from and to MongoDB
collections.

Every document in a collection is a row: it holds a field per feature and
a label field whose value is "yes" or "no". Feature values are read as
their string representation, so numbers and booleans can be used as
categorical values too.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// DefaultLabelField is the field holding the label of the rows when
// none is given.
const DefaultLabelField = "label"

/*
IsSource returns whether the given input location is a MongoDB
connection URL.
*/
func IsSource(location string) bool {
	return strings.HasPrefix(location, "mongodb://")
}

/*
Open takes a MongoDB connection URL and returns a session on it or an
error if it fails to connect. The database to use is the one in the URL.
*/
func Open(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to MongoDB at %s", url)
	}
	return session, nil
}

/*
Load takes a context, a MongoDB collection and the name of the field
holding labels, and returns the table of rows read from the documents
in the collection or an error.

The field order of the table is that of the first document, without its
_id and label fields. Every other document must have the same fields,
in any order. Reading is stopped when the context is cancelled.
*/
func Load(ctx context.Context, c *mgo.Collection, label string) (*dataset.Table, error) {
	if label == "" {
		label = DefaultLabelField
	}
	iter := c.Find(nil).Select(bson.M{"_id": 0}).Iter()
	defer iter.Close()
	var t *dataset.Table
	var columns map[string]int
	var doc bson.D
	for l := 1; iter.Next(&doc); l++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if t == nil {
			t = &dataset.Table{}
			columns = make(map[string]int)
			for _, e := range doc {
				if e.Name == label {
					continue
				}
				columns[e.Name] = len(t.FieldOrder)
				t.FieldOrder = append(t.FieldOrder, e.Name)
			}
		}
		values, err := record(doc, columns, label)
		if err != nil {
			return nil, errors.Wrapf(err, "document %d of collection %s", l, c.FullName)
		}
		if err = t.AppendRecord(l, values); err != nil {
			return nil, errors.Wrapf(err, "collection %s", c.FullName)
		}
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", c.FullName)
	}
	if t == nil {
		return nil, errors.Errorf("collection %s has no documents", c.FullName)
	}
	return t, nil
}

func record(doc bson.D, columns map[string]int, label string) ([]string, error) {
	values := make([]string, len(columns)+1)
	seen := make([]bool, len(columns)+1)
	for _, e := range doc {
		i, ok := columns[e.Name]
		if e.Name == label {
			i, ok = len(columns), true
		}
		if !ok {
			return nil, errors.Errorf("unexpected field %s", e.Name)
		}
		if e.Value == nil {
			return nil, errors.Errorf("field %s is null", e.Name)
		}
		values[i] = fmt.Sprintf("%v", e.Value)
		seen[i] = true
	}
	for name, i := range columns {
		if !seen[i] {
			return nil, errors.Errorf("missing field %s", name)
		}
	}
	if !seen[len(columns)] {
		return nil, errors.Errorf("missing label field %s", label)
	}
	return values, nil
}

/*
Write takes a context, a MongoDB collection, the name of the field to
hold labels and a table of rows, and inserts a document into the
collection for every row. It returns an error if an insertion fails or
the context is cancelled.
*/
func Write(ctx context.Context, c *mgo.Collection, label string, t *dataset.Table) error {
	if label == "" {
		label = DefaultLabelField
	}
	for _, f := range t.FieldOrder {
		if f == label || f == "_id" {
			return errors.Errorf("'%s' is reserved and cannot be used as feature name", f)
		}
	}
	for i, r := range t.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(r.Values) != len(t.FieldOrder) {
			return &dataset.ArityError{Line: i + 1, Expected: len(t.FieldOrder) + 1, Got: len(r.Values) + 1}
		}
		doc := make(bson.D, 0, len(r.Values)+1)
		for j, v := range r.Values {
			doc = append(doc, bson.DocElem{Name: t.FieldOrder[j], Value: v})
		}
		doc = append(doc, bson.DocElem{Name: label, Value: string(r.Label)})
		if err := c.Insert(doc); err != nil {
			return errors.Wrapf(err, "inserting row %d into collection %s", i+1, c.FullName)
		}
	}
	return nil
}
