package output

import (
	"fmt"
	"io"
	"os"

	"github.com/karsanda/barong/packages/core/config"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes the merged config as YAML. Keys come out sorted.
type YAMLFormatter struct {
	writer io.Writer
}

type YAMLOption func(*YAMLFormatter)

func NewYAMLFormatter(opts ...YAMLOption) *YAMLFormatter {
	f := &YAMLFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func YAMLWithWriter(w io.Writer) YAMLOption {
	return func(f *YAMLFormatter) {
		f.writer = w
	}
}

func (f *YAMLFormatter) FormatConfig(cfg *config.BaseConfig) error {
	return f.encode(cfg.ToMap())
}

func (f *YAMLFormatter) FormatFiles(files config.ConfigFileSet) error {
	if files.Tests == nil {
		files.Tests = []string{}
	}
	return f.encode(files)
}

func (f *YAMLFormatter) FormatError(err error) {
	_ = f.encode(map[string]string{"error": err.Error()})
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return encoder.Close()
}
