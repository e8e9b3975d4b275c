package main

import (
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeOutputConfig
	pruneStrategy string
	format        string
	pruner        sapling.Pruner
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of labelled data, prune it, print it and save it`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := config.Context()
			ds, err := config.readDataset(ctx, config.Logf)
			if err != nil {
				config.fail(2, err)
			}
			config.Logf("Growing tree from a set with %d rows and %d features...", ds.Count(), ds.Registry().Len())
			grown, err := sapling.GrowAll(ds)
			if err != nil {
				config.fail(3, errors.Wrap(err, "growing the tree"))
			}
			config.Logf("Pruning tree with %d nodes...", tree.Size(grown))
			pruned, _ := sapling.Prune(grown, config.pruner)
			config.Logf("Done")
			if err = tree.Fprint(os.Stdout, pruned); err != nil {
				config.fail(4, err)
			}
			training, err := tree.Evaluate(pruned, ds.Rows())
			if err != nil {
				config.fail(5, errors.Wrap(err, "testing the tree against the training set"))
			}
			if err = config.saveTree(ctx, pruned, config.Logf); err != nil {
				config.fail(6, err)
			}
			r := &report{
				Rows:     ds.Count(),
				Grown:    stats(grown),
				Pruned:   stats(pruned),
				Training: newAccuracy(training),
			}
			if err = r.write(os.Stdout, config.format); err != nil {
				config.fail(7, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd, "grow the tree")
	config.treeOutputConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", defaultPruneStrategy, "pruning strategy to apply, the following are valid: chi-squared[:CONFIDENCE] (confidence defaults to 0.95), none")
	cmd.PersistentFlags().StringVarP(&(config.format), "format", "f", "text", "format of the report: text, yaml or json")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if err := validReportFormat(gcc.format); err != nil {
		return err
	}
	pruner, err := pruningStrategy(gcc.pruneStrategy)
	if err != nil {
		return err
	}
	gcc.pruner = pruner
	return gcc.treeOutputConfig.Validate()
}
