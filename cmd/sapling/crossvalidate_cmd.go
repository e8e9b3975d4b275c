package main

import (
	"context"
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/queue/redisq"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type crossValidateCmdConfig struct {
	*rootCmdConfig
	inputConfig
	redisConfig
	queueName     string
	pruneStrategy string
	format        string
	workers       int
	pruner        sapling.Pruner
}

func crossValidateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &crossValidateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:     "crossvalidate",
		Aliases: []string{"cv"},
		Short:   "Measure accuracy with leave-one-out cross-validation",
		Long:    `Measure the accuracy of grown and pruned trees on a set of data with leave-one-out cross-validation`,
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
			result, err := config.crossValidate(ctx, ds)
			if err != nil {
				config.fail(3, err)
			}
			config.Logf("Done")
			r := &report{
				Rows:              ds.Count(),
				LeaveOneOut:       newAccuracy(result.Unpruned),
				PrunedLeaveOneOut: newAccuracy(result.Pruned),
			}
			if err = r.write(os.Stdout, config.format); err != nil {
				config.fail(4, err)
			}
		},
	}
	config.inputConfig.addFlags(cmd, "cross-validate on")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", defaultPruneStrategy, "pruning strategy to apply, the following are valid: chi-squared[:CONFIDENCE] (confidence defaults to 0.95), none")
	cmd.PersistentFlags().StringVarP(&(config.format), "format", "f", "text", "format of the report: text, yaml or json")
	config.addQueueFlags(cmd)
	return cmd
}

func (cvcc *crossValidateCmdConfig) addQueueFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVarP(&(cvcc.workers), "workers", "w", 1, "number of cross-validation folds to evaluate concurrently")
	cmd.PersistentFlags().StringVar(&(cvcc.queueName), "redis-queue", "", "name of a queue on Redis to hold the cross-validation folds in (requires redis-addr, defaults to an in-memory queue)")
	cvcc.redisConfig.addFlags(cmd)
}

// crossValidate runs a leave-one-out cross-validation on ds.
func (cvcc *crossValidateCmdConfig) crossValidate(ctx context.Context, ds *dataset.Dataset) (*sapling.CrossValidation, error) {
	cv := &sapling.CrossValidator{
		Pruner:  cvcc.pruner,
		Workers: cvcc.workers,
		Logger:  cvcc.Logger().Desugar(),
	}
	if cvcc.queueName != "" {
		client, err := cvcc.client()
		if err != nil {
			return nil, err
		}
		defer client.Close()
		cv.Queue = redisq.New(cvcc.queueName, client)
		defer cv.Queue.Stop(context.Background())
		cvcc.Logf("Queueing folds on %s at redis %s", cvcc.queueName, cvcc.redisAddr)
	}
	cvcc.Logf("Cross-validating on %d rows with %d workers...", ds.Count(), cvcc.workers)
	result, err := cv.LeaveOneOut(ctx, ds)
	if err != nil {
		return nil, errors.Wrap(err, "cross-validating")
	}
	return result, nil
}

func (cvcc *crossValidateCmdConfig) Validate() error {
	if err := validReportFormat(cvcc.format); err != nil {
		return err
	}
	if cvcc.queueName != "" && cvcc.redisAddr == "" {
		return errors.New("redis-queue flag requires the redis-addr flag")
	}
	if cvcc.workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", cvcc.workers)
	}
	pruner, err := pruningStrategy(cvcc.pruneStrategy)
	if err != nil {
		return err
	}
	cvcc.pruner = pruner
	return nil
}
