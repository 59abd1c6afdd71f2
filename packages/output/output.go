package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/karsanda/barong/packages/core/config"
)

// Formatter renders resolution results.
type Formatter interface {
	FormatConfig(cfg *config.BaseConfig) error
	FormatFiles(files config.ConfigFileSet) error
	FormatError(err error)
}

// Formats lists the names accepted by NewFormatter.
var Formats = []string{"console", "json", "yaml"}

// UnknownFormatError is returned for an unsupported format name.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q (want one of: %s)", e.Format, strings.Join(Formats, ", "))
}

// CheckFormat reports whether format names a supported formatter.
func CheckFormat(format string) error {
	switch normalizeFormat(format) {
	case "console", "json", "yaml":
		return nil
	default:
		return &UnknownFormatError{Format: format}
	}
}

func normalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		return "console"
	case "yml":
		return "yaml"
	default:
		return f
	}
}

// NewFormatter picks a formatter by name. Colour and verbosity only apply to
// the console formatter.
func NewFormatter(format string, w io.Writer, noColor, verbose bool) (Formatter, error) {
	switch normalizeFormat(format) {
	case "console":
		return NewConsoleFormatter(
			WithWriter(w),
			WithNoColor(noColor || !IsTerminal(w)),
			WithVerbose(verbose),
		), nil
	case "json":
		return NewJSONFormatter(JSONWithWriter(w)), nil
	case "yaml":
		return NewYAMLFormatter(YAMLWithWriter(w)), nil
	default:
		return nil, &UnknownFormatError{Format: format}
	}
}
