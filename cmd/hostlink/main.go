package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wasmfoundry/hostlink/internal/cli"
	"github.com/wasmfoundry/hostlink/internal/utils"
)

func main() {
	// Define command-line flags
	var (
		moduleFlag     = flag.String("module", "", "Custom module name for import paths (defaults to go.mod module)")
		outputFlag     = flag.String("o", "", "Write descriptor lines to a file instead of stdout")
		syntaxOnlyFlag = flag.Bool("syntax-only", false, "Scan without type checking (no build required)")
		verboseFlag    = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag      = flag.Bool("quiet", false, "Only show errors and descriptor output")
		helpFlag       = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "hostlink Host Import Scanner\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go declarations with hostlink:: markers and emits one descriptor line per marked declaration.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for marked Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(os.Stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(os.Stderr, "  ./internal/...     Scan internal directory and all its subdirectories\n")
		fmt.Fprintf(os.Stderr, "  ./pkg/widgets      Scan only the specific directory (no recursion)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything, descriptors to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o imports.desc ./...                  # Write descriptors to a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...  # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --syntax-only ./internal/...           # Scan without type checking\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose -o imports.desc ./...        # Enable detailed output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --quiet -o imports.desc ./...          # Minimal output\n", os.Args[0])
	}

	flag.Parse()

	// Show help if requested
	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	// Validate arguments
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Create diagnostic system based on flags
	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	// Without -o the descriptor lines own stdout, so progress chatter moves
	// to stderr to keep the stream parseable.
	stdoutMode := *outputFlag == ""
	if stdoutMode {
		diagnostics.SetOutput(os.Stderr)
	}

	// Show startup banner
	diagnostics.Section("hostlink Host Import Scanner")

	// Show configuration
	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
		if stdoutMode {
			diagnostics.List("Output: stdout")
		} else {
			diagnostics.List("Output file: %s", *outputFlag)
		}
		if *syntaxOnlyFlag {
			diagnostics.List("Syntax-only mode: enabled")
		}
		diagnostics.List("Verbose mode: enabled")
	}

	runner := cli.NewRunnerWithDiagnostics(*verboseFlag, diagnostics)

	config := cli.Config{
		Directories: args,
		ModuleName:  *moduleFlag,
		OutputPath:  *outputFlag,
		SyntaxOnly:  *syntaxOnlyFlag,
		Verbose:     *verboseFlag,
	}

	// Run the scan
	if err := runner.Run(config); err != nil {
		runner.ReportError(err)
		os.Exit(1)
	}

	// Show final summary; in stdout mode the summary would pollute the
	// descriptor stream, so it is skipped.
	if !stdoutMode && !*quietFlag {
		runner.ReportSuccess()
	}
}
