package output

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/karsanda/barong/packages/core/config"
	"github.com/karsanda/barong/packages/manifest"
)

// formatValue formats a value for display, truncating or summarizing large values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	}
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatConfig(cfg *config.BaseConfig) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold(cfg.Label))
	fmt.Fprintf(f.writer, "  Capture target: %s\n", cfg.CaptureTarget)
	if cfg.TestFolder != "" {
		fmt.Fprintf(f.writer, "  Test folder:    %s\n", cfg.TestFolder)
	}

	if f.verbose && len(cfg.Extra) > 0 {
		fmt.Fprintf(f.writer, "  Extra:\n")
		for _, key := range sortedKeys(cfg.Extra) {
			fmt.Fprintf(f.writer, "    %s = %s\n", key, formatValue(cfg.Extra[key], 80))
		}
	}

	fmt.Fprintf(f.writer, "\n")
	for _, s := range cfg.Scenarios {
		fmt.Fprintf(f.writer, "  %s %s\n", s.Label, cyan("→ "+s.OutputFile))
		if f.verbose {
			for _, key := range sortedKeys(s.Extra) {
				fmt.Fprintf(f.writer, "      %s = %s\n", key, formatValue(s.Extra[key], 80))
			}
		}
	}

	fmt.Fprintf(f.writer, "\nScenarios: %d total\n\n", len(cfg.Scenarios))
	return nil
}

func (f *ConsoleFormatter) FormatFiles(files config.ConfigFileSet) error {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s\n", bold("Base:"), files.Base)
	for _, path := range files.Tests {
		fmt.Fprintf(f.writer, "  - %s\n", path)
	}
	fmt.Fprintf(f.writer, "Pages: %d\n", len(files.Tests))
	return nil
}

// FormatScenarios prints one line per scenario without any decoration.
func (f *ConsoleFormatter) FormatScenarios(cfg *config.BaseConfig) {
	for _, s := range cfg.Scenarios {
		fmt.Fprintf(f.writer, "%s\t%s\n", s.Label, s.OutputFile)
	}
}

// FormatReports prints validation results and returns the number of files
// that failed.
func (f *ConsoleFormatter) FormatReports(reports []config.FileReport) int {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	failed := 0
	for _, r := range reports {
		if r.Valid() {
			fmt.Fprintf(f.writer, "  %s %s (%s)\n", green("✓"), r.Path, r.Kind)
			continue
		}

		failed++
		fmt.Fprintf(f.writer, "  %s %s (%s)\n", red("✗"), r.Path, r.Kind)
		if r.Err != nil {
			fmt.Fprintf(f.writer, "    %s %v\n", red("→"), r.Err)
		}
		for _, p := range r.Problems {
			fmt.Fprintf(f.writer, "    %s %s\n", red("→"), p)
		}
	}

	fmt.Fprintf(f.writer, "\nFiles: ")
	if passed := len(reports) - failed; passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d valid", passed)))
	}
	if failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d invalid", failed)))
	}
	fmt.Fprintf(f.writer, "%d total\n", len(reports))
	return failed
}

// FormatRuns prints a manifest history listing.
func (f *ConsoleFormatter) FormatRuns(runs []manifest.Run) {
	cyan := color.New(color.FgCyan).SprintFunc()

	if len(runs) == 0 {
		fmt.Fprintf(f.writer, "No recorded runs\n")
		return
	}
	for _, run := range runs {
		selector := run.Selector
		if selector == "" {
			selector = "(default)"
		}
		fmt.Fprintf(f.writer, "%s  %s  %-16s %s %s\n",
			run.ID, cyan(run.CreatedAt.Local().Format(time.DateTime)), selector, run.Label,
			fmt.Sprintf("(%d scenarios)", run.ScenarioCount))
	}
}

// FormatRun prints one recorded run with its scenarios.
func (f *ConsoleFormatter) FormatRun(run *manifest.Run) {
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s\n", bold("Run:"), run.ID)
	fmt.Fprintf(f.writer, "  Recorded:       %s\n", run.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(f.writer, "  Directory:      %s\n", run.Cwd)
	if run.Selector != "" {
		fmt.Fprintf(f.writer, "  Selector:       %s\n", run.Selector)
	}
	fmt.Fprintf(f.writer, "  Base config:    %s\n", run.BaseFile)
	fmt.Fprintf(f.writer, "  Label:          %s\n", run.Label)
	fmt.Fprintf(f.writer, "  Capture target: %s\n\n", run.CaptureTarget)
	for _, s := range run.Scenarios {
		fmt.Fprintf(f.writer, "  %s %s\n", s.Label, cyan("→ "+s.OutputFile))
	}
	fmt.Fprintf(f.writer, "\nScenarios: %d total\n", len(run.Scenarios))
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("barong"), version)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
