package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type runCmdConfig struct {
	crossValidateCmdConfig
	skipCrossValidation bool
}

func runCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &runCmdConfig{crossValidateCmdConfig: crossValidateCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Grow, prune and evaluate a tree",
		Long: `Grow a tree from a set of data and print it, prune it and print it again,
then report the accuracy of both trees on the training set and with
leave-one-out cross-validation`,
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
			pruned, _ := sapling.Prune(grown, config.pruner)
			if err = printTrees(grown, pruned); err != nil {
				config.fail(4, err)
			}
			r := &report{Rows: ds.Count(), Grown: stats(grown), Pruned: stats(pruned)}
			training, err := tree.Evaluate(grown, ds.Rows())
			if err != nil {
				config.fail(5, errors.Wrap(err, "testing the grown tree against the training set"))
			}
			r.Training = newAccuracy(training)
			training, err = tree.Evaluate(pruned, ds.Rows())
			if err != nil {
				config.fail(5, errors.Wrap(err, "testing the pruned tree against the training set"))
			}
			r.PrunedTraining = newAccuracy(training)
			if !config.skipCrossValidation {
				result, err := config.crossValidate(ctx, ds)
				if err != nil {
					config.fail(6, err)
				}
				r.LeaveOneOut = newAccuracy(result.Unpruned)
				r.PrunedLeaveOneOut = newAccuracy(result.Pruned)
			}
			config.Logf("Done")
			if err = r.write(os.Stdout, config.format); err != nil {
				config.fail(7, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd, "grow the tree")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", defaultPruneStrategy, "pruning strategy to apply, the following are valid: chi-squared[:CONFIDENCE] (confidence defaults to 0.95), none")
	cmd.PersistentFlags().StringVarP(&(config.format), "format", "f", "text", "format of the report: text, yaml or json")
	config.addQueueFlags(cmd)
	cmd.PersistentFlags().BoolVar(&(config.skipCrossValidation), "skip-cross-validation", false, "do not run leave-one-out cross-validation")
	return cmd
}

func printTrees(grown, pruned tree.Node) error {
	fmt.Println("Grown tree:")
	if err := tree.Fprint(os.Stdout, grown); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Pruned tree:")
	if err := tree.Fprint(os.Stdout, pruned); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
