package config

import (
	"encoding/json"
	"maps"
)

// Top-level keys with a meaning to barong. Everything else passes through.
const (
	KeyLabel         = "label"
	KeyCaptureTarget = "capture_target"
	KeyTestFolder    = "test_folder"
	KeyScenarios     = "scenarios"
	KeyOutputFile    = "output_file"
)

// BaseConfig is the merged project configuration handed to the capture step.
type BaseConfig struct {
	Label         string
	CaptureTarget string
	TestFolder    string
	Scenarios     []Scenario
	Extra         map[string]any // unrecognised top-level keys
}

// PageConfig is one page file. Only the label is interpreted.
type PageConfig struct {
	Label string
	Extra map[string]any
}

// Scenario is a single capture job.
type Scenario struct {
	Label      string
	OutputFile string
	Extra      map[string]any // opaque fields from the page file
}

// ConfigFileSet is the result of locating a project's files.
type ConfigFileSet struct {
	Base  string   `json:"base" yaml:"base"`
	Tests []string `json:"tests" yaml:"tests"`
}

// ToMap flattens the scenario into a plain document.
func (s Scenario) ToMap() map[string]any {
	out := make(map[string]any, len(s.Extra)+2)
	maps.Copy(out, s.Extra)
	out[KeyLabel] = s.Label
	out[KeyOutputFile] = s.OutputFile
	return out
}

// MarshalJSON writes the scenario with its extra fields inlined.
func (s Scenario) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// ToMap flattens the config into a plain document. scenarios is always
// present.
func (c *BaseConfig) ToMap() map[string]any {
	out := make(map[string]any, len(c.Extra)+4)
	maps.Copy(out, c.Extra)

	out[KeyLabel] = c.Label
	out[KeyCaptureTarget] = c.CaptureTarget
	if c.TestFolder != "" {
		out[KeyTestFolder] = c.TestFolder
	}

	scenarios := make([]any, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		scenarios = append(scenarios, s.ToMap())
	}
	out[KeyScenarios] = scenarios

	return out
}

// MarshalJSON writes the config with its extra fields inlined.
func (c *BaseConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}
