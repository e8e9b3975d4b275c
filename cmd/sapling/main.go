package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	logFile    string
	profile    string
	logger     *zap.SugaredLogger
	profiler   interface{ Stop() }
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "sapling",
		Short: "sapling is a tool to grow decision trees",
		Long:  `A tool to grow decision trees from yes/no labelled categorical data, prune them, and measure their accuracy`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.startProfile()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if config.cancelFunc != nil {
				config.cancelFunc()
			}
			config.stopProfile()
			config.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to write JSON logs to, rotated every 10 MB")
	rootCmd.PersistentFlags().StringVar(&(config.profile), "profile", "", "write a CPU profile of the command to the given directory")
	rootCmd.AddCommand(
		versionCmd(),
		runCmd(config),
		growCmd(config),
		testCmd(config),
		crossValidateCmd(config),
		treeCmd(config),
		predictCmd(config),
		setCmd(config),
	)
	return rootCmd
}

func (rc *rootCmdConfig) startProfile() {
	if rc.profile == "" {
		return
	}
	rc.profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(rc.profile), profile.Quiet)
}

func (rc *rootCmdConfig) stopProfile() {
	if rc.profiler != nil {
		rc.profiler.Stop()
		rc.profiler = nil
	}
}

// exit stops any running profile and exits with the given code.
func (rc *rootCmdConfig) exit(code int) {
	rc.stopProfile()
	rc.Sync()
	os.Exit(code)
}

/*
Context returns the context commands run under. It is cancelled when the
process receives an interrupt signal.
*/
func (rc *rootCmdConfig) Context() context.Context {
	if rc.ctx == nil {
		rc.ctx, rc.cancelFunc = context.WithCancel(context.Background())
		logger := rc.Logger()
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		go func() {
			select {
			case <-signals:
				logger.Infof("Interrupted, cancelling...")
				rc.cancelFunc()
			case <-rc.ctx.Done():
			}
			signal.Stop(signals)
		}()
	}
	return rc.ctx
}
