// Package cmd implements the barong CLI commands using Cobra.
//
// Available commands:
//   - resolve: Locate and merge a project's config into capture scenarios
//   - list: Print the scenarios or files a selector resolves to
//   - validate: Check base and page config files against their schema
//   - init: Scaffold a base config, test folder and example page
//   - history: Show resolutions recorded with resolve --record
//   - version: Show barong version information
//
// Every command accepts an optional PROJECT or PROJECT:PAGE selector and
// reads from --cwd. resolve supports JSON and YAML output and a watch mode
// for editing configs.
package cmd
