package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/karsanda/barong/packages/core/config"
	"github.com/karsanda/barong/packages/manifest"
	"github.com/karsanda/barong/packages/output"
	"github.com/karsanda/barong/packages/watch"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [PROJECT[:PAGE]]",
	Short: "Resolve a project into capture scenarios",
	Long: `Locate the base config and page configs for a project, merge them and
print the resulting config with one scenario per page.

Examples:
  barong resolve
  barong resolve liputan6
  barong resolve liputan6 -o json --output-file scenarios.json
  barong resolve liputan6 --record
  barong resolve liputan6 --watch`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: resolveCommand,
}

var (
	outputFlag     string
	outputFileFlag string
	recordFlag     bool
	dbFlag         string
	watchFlag      bool
)

func init() {
	resolveCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("BARONG_OUTPUT", "console"), "Output format: console, json, yaml (env: BARONG_OUTPUT)")
	resolveCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("BARONG_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: BARONG_OUTPUT_FILE)")
	resolveCmd.Flags().BoolVar(&recordFlag, "record", getEnvBool("BARONG_RECORD", false), "Record the resolution in the history database (env: BARONG_RECORD)")
	resolveCmd.Flags().StringVar(&dbFlag, "db", getEnvString("BARONG_DB", manifest.DefaultPath), "History database path (env: BARONG_DB)")
	resolveCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch config files and resolve again on change")
}

func resolveCommand(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}
	selector := selectorArg(args)
	resolver := newResolver()

	// Reject a bad format before touching the disk.
	if err := output.CheckFormat(outputFlag); err != nil {
		return err
	}

	var history *manifest.Store
	if recordFlag {
		history, err = manifest.Open(historyPath(cwd, dbFlag))
		if err != nil {
			return err
		}
		defer history.Close()
	}

	resolveOnce := func(ctx context.Context) (config.ConfigFileSet, error) {
		cfg, files, err := resolver.Resolve(cwd, selector)
		if err != nil {
			return files, err
		}
		if err := writeConfig(cmd, cfg); err != nil {
			return files, err
		}
		if history != nil {
			run, err := history.Record(ctx, cwd, selector, files, cfg)
			if err != nil {
				return files, err
			}
			logger.Info("recorded run", "id", run.ID, "scenarios", run.ScenarioCount)
			fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run %s\n", run.ID)
		}
		return files, nil
	}

	if !watchFlag {
		_, err := resolveOnce(contextOf(cmd))
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := resolveOnce(ctx)
	if err != nil {
		printError(cmd, err)
	}

	watcher, err := watch.New(watchDirs(resolver, cwd, selector, files), watch.WithLogger(logger.Named("watch")))
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	return watcher.Run(ctx, func(path string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nFile changed: %s\nResolving again...\n", path)
		if _, err := resolveOnce(ctx); err != nil {
			printError(cmd, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	})
}

// writeConfig renders cfg to stdout or, when set, a freshly truncated
// output file.
func writeConfig(cmd *cobra.Command, cfg *config.BaseConfig) error {
	var w io.Writer = cmd.OutOrStdout()
	if outputFileFlag != "" {
		f, err := os.Create(outputFileFlag)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	formatter, err := output.NewFormatter(outputFlag, w, noColorFlag, verboseFlag > 0)
	if err != nil {
		return err
	}
	return formatter.FormatConfig(cfg)
}

// watchDirs returns the base config directory and, when it exists, the test
// folder. A base config that could not be located yet falls back to cwd.
func watchDirs(resolver *config.Resolver, cwd, selector string, files config.ConfigFileSet) []string {
	base := files.Base
	if base == "" {
		path, ok := resolver.BaseConfigFile(cwd, selector)
		if !ok {
			return []string{cwd}
		}
		base = path
	}

	dirs := []string{filepath.Dir(base)}
	if folder, err := resolver.TestsBaseFolder(base); err == nil {
		if info, statErr := os.Stat(folder); statErr == nil && info.IsDir() {
			dirs = append(dirs, folder)
		}
	}
	return dirs
}

func printError(cmd *cobra.Command, err error) {
	output.NewConsoleFormatter(output.WithWriter(cmd.ErrOrStderr())).FormatError(err)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
