package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/karsanda/barong/packages/core/config"
	"github.com/karsanda/barong/packages/logging"
	"github.com/karsanda/barong/packages/manifest"
	"github.com/karsanda/barong/packages/output"
	"github.com/karsanda/barong/packages/storage"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	cwdFlag     string
	verboseFlag int // 0=warn, 1=-v, 2=-vv, 3=-vvv
	noColorFlag bool

	logger hclog.Logger = hclog.NewNullLogger()
)

var rootCmd = &cobra.Command{
	Use:   "barong",
	Short: "Visual regression config resolver",
	Long: `barong turns a project's base config and its folder of page configs
into the list of screenshot scenarios a capture step consumes.

Projects are selected with PROJECT or PROJECT:PAGE. Without a selector
barong reads config.json from the working directory.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(verboseFlag, cmd.ErrOrStderr())
		if noColorFlag {
			color.NoColor = true
		}
	},
}

// usageError marks errors caused by how the CLI was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// ValidationError reports config files that failed validation.
type ValidationError struct {
	Failed int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid file(s)", e.Failed)
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	os.Exit(executeArgs(os.Args[1:], os.Stdout, os.Stderr))
}

// executeArgs runs the CLI with args and returns the process exit code.
func executeArgs(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(stderr, "%s %v\n", red("Error:"), err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var (
		usage     *usageError
		format    *output.UnknownFormatError
		parse     *config.ParseError
		notFound  *config.NotFoundError
		missing   *config.MissingFieldError
		fieldType *config.FieldTypeError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage), errors.As(err, &format):
		return ExitUsageError
	case errors.As(err, &parse):
		return ExitParseError
	case errors.As(err, &notFound), errors.As(err, &missing), errors.As(err, &fieldType),
		errors.Is(err, manifest.ErrRunNotFound):
		return ExitConfigError
	default:
		return ExitFailure
	}
}

// workingDir returns the absolute directory configs are resolved from.
func workingDir() (string, error) {
	dir := cwdFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	return filepath.Abs(dir)
}

func newResolver() *config.Resolver {
	return config.NewResolver(storage.NewOsFS(), config.WithLogger(logger.Named("resolver")))
}

func selectorArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// historyPath resolves the manifest database path against the working dir.
func historyPath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cwdFlag, "cwd", getEnvString("BARONG_CWD", ""), "Directory to resolve configs from (env: BARONG_CWD)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Verbose logging (-v, -vv, -vvv for more detail)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("BARONG_NO_COLOR", false), "Disable colored output (env: BARONG_NO_COLOR)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
