// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status indicators in terminal output.
const (
	// Success marks a completed operation, such as a written export.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks something the ordering team should look at.
	Warning = "!"

	// Info marks general information.
	Info = "i"
)
