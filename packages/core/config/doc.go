// Package config resolves barong's hierarchical test configuration.
//
// A project has one base config file (config.json, or <project>.json when a
// selector is given) and a folder of page config files next to it. The
// Resolver:
//   - locates the base file and the page files (BaseConfigFile, ConfigFiles)
//   - fills library defaults into the base config (ReadBaseConfig, MergeDefaults)
//   - turns every page file into a Scenario with a deterministic screenshot
//     path (ReadConfig)
//
// All file access goes through storage.Store.
//
// Basic usage:
//
//	r := config.NewResolver(storage.NewOsFS())
//	files, err := r.ConfigFiles(cwd, "liputan6")
//	if err != nil {
//	    return err
//	}
//	cfg, err := r.ReadConfig(cwd, files)
package config
