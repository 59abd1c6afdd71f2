package cmd

import (
	"github.com/karsanda/barong/packages/output"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [PROJECT[:PAGE]]",
	Short: "Validate base and page config files",
	Long: `Check the base config and every page config of a project against the
documented fields, without merging them. Every file is reported; the command
fails when any file is invalid.

Examples:
  barong validate
  barong validate liputan6`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}
	resolver := newResolver()

	files, err := resolver.ConfigFiles(cwd, selectorArg(args))
	if err != nil {
		return err
	}

	formatter := output.NewConsoleFormatter(output.WithWriter(cmd.OutOrStdout()))
	if failed := formatter.FormatReports(resolver.Validate(files)); failed > 0 {
		return &ValidationError{Failed: failed}
	}
	return nil
}
