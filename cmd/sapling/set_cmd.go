package main

import (
	"context"
	"os"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/mongodataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/dataset/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	inputConfig
	setOutput   string
	outputTable string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy sets of data",
		Long:  `Validate a set of data and copy it into a text file or a database`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := config.Context()
			ds, err := config.readDataset(ctx, config.Logf)
			if err != nil {
				config.fail(2, err)
			}
			t := &dataset.Table{FieldOrder: ds.Registry().FieldOrder(), Rows: ds.Rows()}
			if err = config.writeTable(ctx, t); err != nil {
				config.fail(3, err)
			}
			config.Logf("Done")
		},
	}
	config.inputConfig.addFlags(cmd, "copy")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a text or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT as text)")
	cmd.PersistentFlags().StringVar(&(config.outputTable), "output-table", defaultTable, "name of the SQL table or MongoDB collection to write the set to when writing to a database")
	return cmd
}

func (scc *setCmdConfig) writeTable(ctx context.Context, t *dataset.Table) error {
	switch {
	case mongodataset.IsSource(scc.setOutput):
		scc.Logf("Connecting to MongoDB at %s to write collection %s...", scc.setOutput, scc.outputTable)
		session, err := mongodataset.Open(scc.setOutput)
		if err != nil {
			return err
		}
		defer session.Close()
		return mongodataset.Write(ctx, session.DB("").C(scc.outputTable), scc.labelField, t)
	case sqldataset.IsSource(scc.setOutput):
		scc.Logf("Opening SQL database at %s to write table %s...", scc.setOutput, scc.outputTable)
		db, err := sqldataset.Open(scc.setOutput)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Write(ctx, scc.outputTable, t)
	case scc.setOutput == "":
		scc.Logf("Writing set to STDOUT...")
		return text.WriteTable(os.Stdout, t)
	}
	scc.Logf("Creating %s to dump output set...", scc.setOutput)
	f, err := os.Create(scc.setOutput)
	if err != nil {
		return errors.Wrapf(err, "creating %s", scc.setOutput)
	}
	defer f.Close()
	return text.WriteTable(f, t)
}
