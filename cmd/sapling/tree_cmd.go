package main

import (
	"os"

	"github.com/pbanos/sapling/tree"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInputConfig
	format string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a stored tree",
		Long:  `Print a tree stored in a JSON file or on Redis along with its size and depth`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			n, err := config.loadTree(config.Context(), nil, config.Logf)
			if err != nil {
				config.fail(2, err)
			}
			if err = tree.Fprint(os.Stdout, n); err != nil {
				config.fail(3, err)
			}
			var rows int
			tree.Walk(n, func(n tree.Node) error {
				if l, ok := n.(*tree.Leaf); ok {
					rows += l.Tally.Total()
				}
				return nil
			})
			r := &report{Rows: rows, Grown: stats(n)}
			if err = r.write(os.Stdout, config.format); err != nil {
				config.fail(4, err)
			}
		},
	}
	config.treeInputConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.format), "format", "f", "text", "format of the report: text, yaml or json")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if err := validReportFormat(tcc.format); err != nil {
		return err
	}
	return tcc.treeInputConfig.Validate()
}
