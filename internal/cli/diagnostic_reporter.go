package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	// Clean warning format with orange color
	orange := color.New(color.FgYellow, color.Bold) // Orange-ish color using yellow + bold
	orange.Fprint(os.Stderr, "! ")
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(os.Stderr, "\nERROR: Scan Failed\n")
	fmt.Fprintf(os.Stderr, "==================\n\n")

	// Surface the rich RunError when one is anywhere in the chain
	if runErr := r.findRunError(err); runErr != nil {
		r.reportRunError(runErr)
	} else {
		// Fallback to basic error reporting
		r.reportBasicError(err)
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// reportRunError reports a RunError with full context and suggestions
func (r *DiagnosticReporter) reportRunError(runErr *RunError) {
	// Error kind and location
	r.printErrorHeader(runErr)

	// Main error message
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", runErr.Message)

	// In verbose mode, show the underlying cause if available
	if r.verbose && runErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "Underlying cause: %s\n\n", runErr.Cause.Error())
	}

	// File and line information
	if runErr.File != "" {
		if runErr.Line > 0 {
			fmt.Fprintf(os.Stderr, "Location: %s:%d\n\n", runErr.File, runErr.Line)
		} else {
			fmt.Fprintf(os.Stderr, "File: %s\n\n", runErr.File)
		}
	}

	// Context information
	if len(runErr.Context) > 0 {
		r.printContext(runErr.Context)
	}

	// Suggestions
	if len(runErr.Suggestions) > 0 {
		r.printSuggestions(runErr.Suggestions)
	}

	// Additional help based on error kind
	r.printAdditionalHelp(runErr.Kind)

	// In verbose mode, show additional debugging information
	if r.verbose {
		r.printVerboseDebuggingInfo(runErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", err.Error())

	// Try to provide some general guidance based on error message
	errorMsg := strings.ToLower(err.Error())

	if strings.Contains(errorMsg, "marker") {
		fmt.Fprintf(os.Stderr, "This appears to be a marker-related issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check your //hostlink:: marker syntax\n")
		fmt.Fprintf(os.Stderr, "  - Ensure the kind segment is not empty\n")
		fmt.Fprintf(os.Stderr, "  - Verify markers sit on the declaration they describe\n\n")
	} else if strings.Contains(errorMsg, "module") {
		fmt.Fprintf(os.Stderr, "This appears to be a module-related issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check your go.mod file\n")
		fmt.Fprintf(os.Stderr, "  - Ensure module paths are correct\n")
		fmt.Fprintf(os.Stderr, "  - Try specifying --module flag explicitly\n\n")
	} else if strings.Contains(errorMsg, "parse") || strings.Contains(errorMsg, "load") {
		fmt.Fprintf(os.Stderr, "This appears to be a package loading issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check that the package compiles with 'go build'\n")
		fmt.Fprintf(os.Stderr, "  - Run 'go mod tidy' to ensure dependencies are available\n")
		fmt.Fprintf(os.Stderr, "  - Try --syntax-only to scan without type checking\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error kind
func (r *DiagnosticReporter) printErrorHeader(runErr *RunError) {
	var errorKindStr string

	switch runErr.Kind {
	case ErrorKindUsage:
		errorKindStr = "Usage Error"
	case ErrorKindFileSystem:
		errorKindStr = "File System Error"
	case ErrorKindResolve:
		errorKindStr = "Module Resolution Error"
	case ErrorKindParse:
		errorKindStr = "Parse Error"
	case ErrorKindEmit:
		errorKindStr = "Descriptor Emit Error"
	default:
		errorKindStr = "Unknown Error"
	}

	fmt.Fprintf(os.Stderr, "Type: %s\n", errorKindStr)
	fmt.Fprintf(os.Stderr, "%s\n\n", strings.Repeat("-", len(errorKindStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "Context:\n")

	// Print important context items first
	importantKeys := []string{"directory", "package", "symbol", "marker", "kind"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	// Print remaining context items
	for key, value := range context {
		if !printed[key] {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "directory":
		return "Directory"
	case "package":
		return "Package"
	case "symbol":
		return "Symbol"
	case "marker":
		return "Marker"
	case "kind":
		return "Kind"
	case "import_path":
		return "Import Path"
	case "output_path":
		return "Output Path"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(os.Stderr, "Suggestions:\n")

	for i, suggestion := range suggestions {
		// Format multi-line suggestions nicely
		lines := strings.Split(suggestion, "\n")
		if len(lines) == 1 {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, lines[0])
			for _, line := range lines[1:] {
				if strings.TrimSpace(line) != "" {
					fmt.Fprintf(os.Stderr, "      %s\n", line)
				}
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// printAdditionalHelp prints additional help based on error kind
func (r *DiagnosticReporter) printAdditionalHelp(errorKind ErrorKind) {
	switch errorKind {
	case ErrorKindUsage:
		fmt.Fprintf(os.Stderr, "Usage Requirements:\n")
		fmt.Fprintf(os.Stderr, "  - Pass at least one directory to scan\n")
		fmt.Fprintf(os.Stderr, "  - Use \"dir/...\" to scan a directory tree recursively\n")
		fmt.Fprintf(os.Stderr, "  - Run 'hostlink --help' for the full flag reference\n\n")

	case ErrorKindResolve:
		fmt.Fprintf(os.Stderr, "Module Resolution:\n")
		fmt.Fprintf(os.Stderr, "  - Import paths come from the nearest go.mod above each directory\n")
		fmt.Fprintf(os.Stderr, "  - Use --module to set the module path explicitly\n")
		fmt.Fprintf(os.Stderr, "  - Scanned directories must sit inside their module root\n\n")

	case ErrorKindParse:
		fmt.Fprintf(os.Stderr, "Marker Syntax Help:\n")
		fmt.Fprintf(os.Stderr, "  - Markers must start with //hostlink::\n")
		fmt.Fprintf(os.Stderr, "  - The kind segment before the second colon cannot be empty\n")
		fmt.Fprintf(os.Stderr, "  - Try --syntax-only if type checking fails on generated code\n\n")
	}

	// Always show general help
	fmt.Fprintf(os.Stderr, "For more help:\n")
	fmt.Fprintf(os.Stderr, "  - Check the hostlink documentation\n")
	fmt.Fprintf(os.Stderr, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(os.Stderr, "  - Review example implementations in the examples/ directory\n")
}

// findRunError searches the wrapped error chain for a RunError
func (r *DiagnosticReporter) findRunError(err error) *RunError {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr
	}
	return nil
}

// printVerboseDebuggingInfo prints additional debugging information in verbose mode
func (r *DiagnosticReporter) printVerboseDebuggingInfo(runErr *RunError) {
	fmt.Fprintf(os.Stderr, "Verbose Debug Information:\n")
	fmt.Fprintf(os.Stderr, "  Error Kind Code: %d\n", int(runErr.Kind))

	if runErr.Context != nil {
		fmt.Fprintf(os.Stderr, "  Full Context Data:\n")
		for key, value := range runErr.Context {
			fmt.Fprintf(os.Stderr, "    %s: %+v\n", key, value)
		}
	}

	if runErr.Cause != nil {
		fmt.Fprintf(os.Stderr, "  Error Chain:\n")
		err := runErr.Cause
		level := 1
		for err != nil {
			fmt.Fprintf(os.Stderr, "    %d. %s\n", level, err.Error())
			err = errors.Unwrap(err)
			level++
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// DebugSection prints a debug section header when verbose mode is enabled
func (r *DiagnosticReporter) DebugSection(section string) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] === %s ===\n", section)
	}
}

// ReportSuccess reports a completed scan with summary information
func (r *DiagnosticReporter) ReportSuccess(summary RunSummary) {
	fmt.Printf("\nScan Completed Successfully!\n")
	fmt.Printf("============================\n\n")

	if summary.PackagesScanned > 0 {
		fmt.Printf("Scanned %d packages\n", summary.PackagesScanned)
	}

	if summary.DeclarationsVisited > 0 {
		fmt.Printf("Visited %d declarations\n", summary.DeclarationsVisited)
	}

	if summary.DescriptorsEmitted > 0 {
		fmt.Printf("Emitted %d descriptors\n", summary.DescriptorsEmitted)
	}

	if summary.Functions > 0 {
		fmt.Printf("Found %d functions\n", summary.Functions)
	}

	if summary.Methods > 0 {
		fmt.Printf("Found %d methods\n", summary.Methods)
	}

	if summary.Constructors > 0 {
		fmt.Printf("Found %d constructors\n", summary.Constructors)
	}

	if summary.OutputPath != "" {
		fmt.Printf("\nDescriptors written to %s\n", summary.OutputPath)
	}

	fmt.Printf("\nYour host import descriptors are ready to use!\n")
}

// RunSummary contains information about a completed scan
type RunSummary struct {
	PackagesScanned     int
	DeclarationsVisited int
	DescriptorsEmitted  int
	Functions           int
	Methods             int
	Constructors        int
	OutputPath          string
}
