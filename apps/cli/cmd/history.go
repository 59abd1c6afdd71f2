package cmd

import (
	"github.com/karsanda/barong/packages/manifest"
	"github.com/karsanda/barong/packages/output"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded resolutions",
	Long: `List resolutions recorded with "barong resolve --record", newest first.
With --run, show one run and the scenarios it produced.

Examples:
  barong history
  barong history --limit 5
  barong history --run 3f1c2b9e-...`,
	Args: usageArgs(cobra.NoArgs),
	RunE: historyCommand,
}

var (
	historyLimitFlag int
	historyRunFlag   string
)

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", getEnvInt("BARONG_HISTORY_LIMIT", 20), "Number of runs to show, 0 for all (env: BARONG_HISTORY_LIMIT)")
	historyCmd.Flags().StringVar(&historyRunFlag, "run", "", "Show a single run with its scenarios")
	historyCmd.Flags().StringVar(&dbFlag, "db", getEnvString("BARONG_DB", manifest.DefaultPath), "History database path (env: BARONG_DB)")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	store, err := manifest.Open(historyPath(cwd, dbFlag))
	if err != nil {
		return err
	}
	defer store.Close()

	formatter := output.NewConsoleFormatter(output.WithWriter(cmd.OutOrStdout()))
	ctx := contextOf(cmd)

	if historyRunFlag != "" {
		run, err := store.Get(ctx, historyRunFlag)
		if err != nil {
			return err
		}
		formatter.FormatRun(run)
		return nil
	}

	runs, err := store.List(ctx, historyLimitFlag)
	if err != nil {
		return err
	}
	formatter.FormatRuns(runs)
	return nil
}
