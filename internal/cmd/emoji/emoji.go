// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status indicators and alerts in terminal output.
const (
	// Success represents successful completion of an operation.
	Success = "✓"

	// Error represents a failed operation.
	Error = "✗"

	// Warning represents a degraded but usable result, such as a cached
	// answer served while the remote catalog is unreachable.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"

	// Unknown marks a missing value, such as an unknown birth year.
	Unknown = "?"
)
