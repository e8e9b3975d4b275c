package main

import (
	"os"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeInputConfig
	format string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := config.Context()
			declare, err := config.declarer(config.Logf)
			if err != nil {
				config.fail(2, err)
			}
			t, err := config.readTable(ctx, config.Logf)
			if err != nil {
				config.fail(2, err)
			}
			reg, err := feature.NewRegistry(t.FieldOrder)
			if err == nil && declare != nil {
				err = declare(reg)
			}
			if err != nil {
				config.fail(2, err)
			}
			n, err := config.loadTree(ctx, reg, config.Logf)
			if err != nil {
				config.fail(3, err)
			}
			ds, err := dataset.NewWithRegistry(reg, t.Rows)
			if err != nil {
				config.fail(4, errors.Wrapf(err, "loading rows from %s", displayInput(config.dataInput)))
			}
			config.Logf("Testing tree against test set with %d rows...", ds.Count())
			result, err := tree.Evaluate(n, ds.Rows())
			if err != nil {
				config.fail(5, errors.Wrap(err, "testing tree"))
			}
			config.Logf("Done")
			r := &report{Rows: ds.Count(), Test: newAccuracy(result)}
			if err = r.write(os.Stdout, config.format); err != nil {
				config.fail(6, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd, "test the tree against")
	config.treeInputConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.format), "format", "f", "text", "format of the report: text, yaml or json")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if err := validReportFormat(tcc.format); err != nil {
		return err
	}
	return tcc.treeInputConfig.Validate()
}
