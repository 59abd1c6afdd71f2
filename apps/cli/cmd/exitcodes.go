package cmd

// Exit codes for barong CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitFailure indicates a validation failure or any unclassified error
	ExitFailure = 1

	// ExitParseError indicates a config file is not valid JSON
	ExitParseError = 2

	// ExitConfigError indicates a missing file or a missing or mistyped field
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
