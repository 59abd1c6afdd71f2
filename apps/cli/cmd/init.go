package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/karsanda/barong/packages/core/config"
	"github.com/karsanda/barong/packages/storage"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init [PROJECT]",
	Short: "Initialize a new barong project",
	Long: `Initialize a new barong project in the working directory.

This creates:
  - config.json (or PROJECT.json)  - Base config
  - tests/home.json                - Example page config

Examples:
  barong init
  barong init liputan6
  barong init --force`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	project := config.ParseSelector(selectorArg(args)).Project
	baseName := config.DefaultConfigFilename
	label := "Barong"
	if project != "" {
		baseName = project + config.ConfigExt
		label = project
	}

	configFile := filepath.Join(cwd, baseName)
	exampleFile := filepath.Join(cwd, config.DefaultTestFolder, "home"+config.ConfigExt)

	store := storage.NewOsFS()
	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if store.Exists(f) {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	baseContent := map[string]any{
		config.KeyLabel:         label,
		config.KeyCaptureTarget: "bitmaps_test",
		config.KeyTestFolder:    config.DefaultTestFolder,
		config.KeyScenarios:     []any{},
		"viewports": []map[string]any{
			{"label": "phone", "width": 320, "height": 480},
			{"label": "desktop", "width": 1280, "height": 800},
		},
	}
	if err := store.WriteJSON(configFile, baseContent); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := map[string]any{
		config.KeyLabel: "Home",
		"url":           "https://example.com/",
		"selectors":     []string{"document"},
	}
	if err := store.WriteJSON(exampleFile, exampleContent); err != nil {
		return fmt.Errorf("failed to create example page: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	run := "barong resolve"
	if project != "" {
		run += " " + project
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nGet started:\n  %s\n", run)
	return nil
}
