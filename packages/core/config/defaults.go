package config

const (
	// DefaultConfigFilename is looked up in the working directory when no
	// selector is given.
	DefaultConfigFilename = "config.json"

	// ConfigExt is the extension of base and page config files.
	ConfigExt = ".json"

	// ScreenshotExt is appended to every generated output file.
	ScreenshotExt = ".png"

	// DefaultTestFolder is used when a base config names no test_folder.
	DefaultTestFolder = "tests"
)

// DefaultValues returns a fresh copy of the library defaults for a base
// config.
func DefaultValues() map[string]any {
	return map[string]any{
		KeyTestFolder: DefaultTestFolder,
		KeyScenarios:  []any{},
	}
}

// MergeDefaults returns a new document holding every top-level key of loaded,
// plus the keys of defaults that loaded lacks. The merge is shallow: a key
// present in loaded wins whole, whatever its value. Default values are copied
// so the result never aliases defaults.
func MergeDefaults(loaded, defaults map[string]any) map[string]any {
	result := make(map[string]any, len(loaded)+len(defaults))

	for k, v := range defaults {
		result[k] = deepCopy(v)
	}
	for k, v := range loaded {
		result[k] = v
	}

	return result
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
