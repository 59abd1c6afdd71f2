package cmd

import (
	"github.com/karsanda/barong/packages/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [PROJECT[:PAGE]]",
	Short: "List the scenarios a project resolves to",
	Long: `Print one line per scenario: its label and output file, tab separated.
With --files, print the base config and page files instead.

Examples:
  barong list
  barong list liputan6
  barong list liputan6 --files`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: listCommand,
}

var listFilesFlag bool

func init() {
	listCmd.Flags().BoolVar(&listFilesFlag, "files", false, "List the located config files instead of scenarios")
}

func listCommand(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}
	resolver := newResolver()
	formatter := output.NewConsoleFormatter(output.WithWriter(cmd.OutOrStdout()))

	if listFilesFlag {
		files, err := resolver.ConfigFiles(cwd, selectorArg(args))
		if err != nil {
			return err
		}
		return formatter.FormatFiles(files)
	}

	cfg, _, err := resolver.Resolve(cwd, selectorArg(args))
	if err != nil {
		return err
	}
	formatter.FormatScenarios(cfg)
	return nil
}
