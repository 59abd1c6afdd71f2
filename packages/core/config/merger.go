package config

import (
	"maps"
	"path/filepath"

	"github.com/karsanda/barong/packages/slug"
)

// ReadJSON loads the JSON object at path. Missing and malformed files are
// errors; nothing is defaulted.
func (r *Resolver) ReadJSON(path string) (map[string]any, error) {
	return r.store.ReadJSON(path)
}

// ReadBaseConfig loads the base config at path and fills in the resolver's
// defaults for any top-level key the file does not set.
func (r *Resolver) ReadBaseConfig(path string) (*BaseConfig, error) {
	loaded, err := r.ReadJSON(path)
	if err != nil {
		return nil, err
	}

	cfg, err := decodeBase(path, MergeDefaults(loaded, r.defaults))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("loaded base config", "path", path, "label", cfg.Label, "capture_target", cfg.CaptureTarget)
	return cfg, nil
}

// ReadConfig merges the base config of files with one scenario per page
// file, in the order of files.Tests. Output paths are rooted at cwd. Any
// failing page aborts the whole merge.
func (r *Resolver) ReadConfig(cwd string, files ConfigFileSet) (*BaseConfig, error) {
	cfg, err := r.ReadBaseConfig(files.Base)
	if err != nil {
		return nil, err
	}

	scenarios := cfg.Scenarios
	for _, path := range files.Tests {
		doc, err := r.ReadJSON(path)
		if err != nil {
			return nil, err
		}

		page, err := decodePage(path, doc)
		if err != nil {
			return nil, err
		}

		scenario := NewScenario(cwd, cfg, page)
		r.logger.Debug("added scenario", "page", path, "label", scenario.Label, "output_file", scenario.OutputFile)
		scenarios = append(scenarios, scenario)
	}
	cfg.Scenarios = scenarios

	return cfg, nil
}

// NewScenario builds the scenario for page under base.
func NewScenario(cwd string, base *BaseConfig, page *PageConfig) Scenario {
	name := slug.GenerateFilename(base.Label, page.Label) + ScreenshotExt

	extra := maps.Clone(page.Extra)
	delete(extra, KeyOutputFile)
	if len(extra) == 0 {
		extra = nil
	}

	return Scenario{
		Label:      page.Label,
		OutputFile: filepath.Join(cwd, base.CaptureTarget, name),
		Extra:      extra,
	}
}

func decodeBase(path string, doc map[string]any) (*BaseConfig, error) {
	cfg := &BaseConfig{Extra: make(map[string]any)}
	var err error

	if cfg.Label, err = requiredString(path, doc, KeyLabel); err != nil {
		return nil, err
	}
	if cfg.CaptureTarget, err = requiredString(path, doc, KeyCaptureTarget); err != nil {
		return nil, err
	}
	if cfg.TestFolder, err = optionalString(path, doc, KeyTestFolder); err != nil {
		return nil, err
	}

	cfg.Scenarios = []Scenario{}
	switch raw := doc[KeyScenarios].(type) {
	case nil:
	case []any:
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, &FieldTypeError{Path: path, Field: KeyScenarios, Want: "array of objects", Got: item}
			}
			s, err := decodeScenario(path, entry)
			if err != nil {
				return nil, err
			}
			cfg.Scenarios = append(cfg.Scenarios, s)
		}
	default:
		return nil, &FieldTypeError{Path: path, Field: KeyScenarios, Want: "array", Got: raw}
	}

	for k, v := range doc {
		switch k {
		case KeyLabel, KeyCaptureTarget, KeyTestFolder, KeyScenarios:
		default:
			cfg.Extra[k] = v
		}
	}

	return cfg, nil
}

func decodeScenario(path string, doc map[string]any) (Scenario, error) {
	label, err := optionalString(path, doc, KeyLabel)
	if err != nil {
		return Scenario{}, err
	}
	output, err := optionalString(path, doc, KeyOutputFile)
	if err != nil {
		return Scenario{}, err
	}

	extra := maps.Clone(doc)
	delete(extra, KeyLabel)
	delete(extra, KeyOutputFile)
	if len(extra) == 0 {
		extra = nil
	}

	return Scenario{Label: label, OutputFile: output, Extra: extra}, nil
}

func decodePage(path string, doc map[string]any) (*PageConfig, error) {
	label, err := requiredString(path, doc, KeyLabel)
	if err != nil {
		return nil, err
	}

	extra := maps.Clone(doc)
	delete(extra, KeyLabel)
	if len(extra) == 0 {
		extra = nil
	}

	return &PageConfig{Label: label, Extra: extra}, nil
}

func requiredString(path string, doc map[string]any, key string) (string, error) {
	s, err := optionalString(path, doc, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &MissingFieldError{Path: path, Field: key}
	}
	return s, nil
}

func optionalString(path string, doc map[string]any, key string) (string, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &FieldTypeError{Path: path, Field: key, Want: "string", Got: raw}
	}
	return s, nil
}
