package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/karsanda/barong/packages/core/config"
)

// JSONFormatter writes the merged config as indented JSON
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatConfig(cfg *config.BaseConfig) error {
	return f.encode(cfg.ToMap())
}

func (f *JSONFormatter) FormatFiles(files config.ConfigFileSet) error {
	if files.Tests == nil {
		files.Tests = []string{}
	}
	return f.encode(files)
}

// FormatError writes {"error": "..."} so the stream stays machine readable.
func (f *JSONFormatter) FormatError(err error) {
	_ = f.encode(map[string]string{"error": err.Error()})
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
