package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/sapling/dataset/inputsample"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInputConfig
}

type stdoutFeatureValueRequester struct{}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the label for a sample answering questions",
		Long:  `Use the loaded tree to predict the label for a sample answering a reduced set of questions about its features`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			n, err := config.loadTree(config.Context(), nil, config.Logf)
			if err != nil {
				config.fail(2, err)
			}
			label, err := tree.Classify(n, inputsample.New(os.Stdin, stdoutFeatureValueRequester{}))
			if err != nil {
				config.fail(3, err)
			}
			fmt.Printf("Predicted label is %s\n", label)
		},
	}
	config.treeInputConfig.addFlags(cmd)
	return cmd
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f *feature.DiscreteFeature) error {
	fmt.Printf("Please provide the sample's %s:\n(valid values are %s)\n", f.Name(), strings.Join(f.AvailableValues(), ", "))
	return nil
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f *feature.DiscreteFeature, v string) error {
	fmt.Printf("Invalid value %q for %s, please provide one of %s:\n", v, f.Name(), strings.Join(f.AvailableValues(), ", "))
	return nil
}
