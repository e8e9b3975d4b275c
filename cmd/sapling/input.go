package main

import (
	"context"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/mongodataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/dataset/text"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/feature/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// defaultTable is the SQL table or MongoDB collection rows are read from
// when none is given.
const defaultTable = "rows"

/*
inputConfig holds the flags that locate a set of rows and the metadata
declaring the domains of its features.
*/
type inputConfig struct {
	dataInput     string
	metadataInput string
	table         string
	labelField    string
}

func (ic *inputConfig) addFlags(cmd *cobra.Command, purpose string) {
	cmd.PersistentFlags().StringVarP(&(ic.dataInput), "input", "i", "", "path to an input text file or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to "+purpose+" (defaults to STDIN, interpreted as text)")
	cmd.PersistentFlags().StringVarP(&(ic.metadataInput), "metadata", "m", "", "path to a YML file with metadata declaring the values each feature can take (optional, by default values are taken from the input)")
	cmd.PersistentFlags().StringVar(&(ic.table), "table", defaultTable, "name of the SQL table or MongoDB collection holding the data when reading from a database")
	cmd.PersistentFlags().StringVar(&(ic.labelField), "label-field", mongodataset.DefaultLabelField, "name of the field holding labels when reading from a MongoDB collection")
}

/*
readTable reads the rows located by the input flags. Rows are read from
a database when the input is a .db file or a connection URL, and parsed
as whitespace-delimited text otherwise.
*/
func (ic *inputConfig) readTable(ctx context.Context, logf func(string, ...interface{})) (*dataset.Table, error) {
	switch {
	case mongodataset.IsSource(ic.dataInput):
		logf("Connecting to MongoDB at %s to read collection %s...", ic.dataInput, ic.table)
		session, err := mongodataset.Open(ic.dataInput)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		return mongodataset.Load(ctx, session.DB("").C(ic.table), ic.labelField)
	case sqldataset.IsSource(ic.dataInput):
		logf("Opening SQL database at %s to read table %s...", ic.dataInput, ic.table)
		db, err := sqldataset.Open(ic.dataInput)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Load(ctx, ic.table)
	case ic.dataInput == "":
		logf("Reading rows from STDIN...")
	default:
		logf("Reading rows from %s...", ic.dataInput)
	}
	return text.ReadTableFromFilePath(ic.dataInput)
}

/*
declarer returns the function to declare feature domains on registries
with, or nil if no metadata was given.
*/
func (ic *inputConfig) declarer(logf func(string, ...interface{})) (func(*feature.Registry) error, error) {
	if ic.metadataInput == "" {
		return nil, nil
	}
	logf("Reading features from metadata at %s...", ic.metadataInput)
	md, err := yaml.ReadMetadataFromFile(ic.metadataInput)
	if err != nil {
		return nil, err
	}
	return md.Apply, nil
}

/*
readDataset reads the rows located by the input flags and returns them as
a dataset, with domains declared by the metadata if given.
*/
func (ic *inputConfig) readDataset(ctx context.Context, logf func(string, ...interface{})) (*dataset.Dataset, error) {
	declare, err := ic.declarer(logf)
	if err != nil {
		return nil, err
	}
	t, err := ic.readTable(ctx, logf)
	if err != nil {
		return nil, err
	}
	ds, err := t.Dataset(declare)
	if err != nil {
		return nil, errors.Wrapf(err, "loading rows from %s", displayInput(ic.dataInput))
	}
	logf("Loaded %d rows with %d features: %s", ds.Count(), ds.Registry().Len(), strings.Join(ds.Registry().FieldOrder(), ", "))
	return ds, nil
}

func displayInput(input string) string {
	if input == "" {
		return "STDIN"
	}
	return input
}
