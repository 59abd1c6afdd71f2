// Package output renders resolved barong configs.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: The merged config as handed to the capture step
//   - YAML: The same document in YAML
//
// Every formatter implements Formatter. The console formatter also renders
// scenario listings, validation reports and manifest history.
package output
