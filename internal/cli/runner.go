package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/wasmfoundry/hostlink/internal/decl"
	"github.com/wasmfoundry/hostlink/internal/gofront"
	"github.com/wasmfoundry/hostlink/internal/scanner"
	"github.com/wasmfoundry/hostlink/internal/symbol"
	"github.com/wasmfoundry/hostlink/internal/utils"
)

// Runner coordinates the CLI scanning process
type Runner struct {
	dirScanner  *DirectoryScanner
	resolver    *ModuleResolver
	frontend    *gofront.Frontend
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	summary     RunSummary
}

// NewRunner creates a new CLI runner
func NewRunner(verbose bool) *Runner {
	return &Runner{
		dirScanner: NewDirectoryScanner(),
		resolver:   NewModuleResolver(),
		frontend:   gofront.NewFrontend(),
		reporter:   NewDiagnosticReporter(verbose),
	}
}

// NewRunnerWithDiagnostics creates a new CLI runner with the diagnostic system
func NewRunnerWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Runner {
	return &Runner{
		dirScanner:  NewDirectoryScanner(),
		resolver:    NewModuleResolver(),
		frontend:    gofront.NewFrontend(),
		reporter:    NewDiagnosticReporter(verbose),
		diagnostics: diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (r *Runner) GetSummary() RunSummary {
	return r.summary
}

// ReportError formats err for the user on stderr
func (r *Runner) ReportError(err error) {
	r.reporter.ReportError(err)
}

// ReportSuccess prints the post-run summary
func (r *Runner) ReportSuccess() {
	r.reporter.ReportSuccess(r.summary)
}

// Run executes the complete scanning process
func (r *Runner) Run(config Config) error {
	startTime := time.Now()

	r.summary = RunSummary{OutputPath: config.OutputPath}

	if r.diagnostics != nil {
		r.diagnostics.Verbose("Starting scan at %s", startTime.Format("15:04:05"))
		r.diagnostics.Debug("Scanning directories: %v", config.Directories)
		if config.ModuleName != "" {
			r.diagnostics.Debug("Using custom module name: %s", config.ModuleName)
		}
	} else if config.Verbose {
		fmt.Printf("Starting scan at %s\n", startTime.Format("15:04:05"))
		fmt.Printf("Scanning directories: %v\n", config.Directories)
		if config.ModuleName != "" {
			fmt.Printf("Using custom module name: %s\n", config.ModuleName)
		}
		fmt.Printf("\n")
	}

	if err := config.Validate(); err != nil {
		return &RunError{
			Kind:    ErrorKindUsage,
			Message: fmt.Sprintf("Invalid configuration: %v", err),
			Cause:   err,
			Suggestions: []string{
				"Pass at least one directory to scan",
				"Check that the --module flag value is a valid import path",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}

	packageDirs, err := r.dirScanner.ScanDirectories(config.Directories)
	if err != nil {
		if r.diagnostics != nil {
			r.diagnostics.Error("Failed to scan directories: %v", err)
		}
		return &RunError{
			Kind:    ErrorKindFileSystem,
			Message: fmt.Sprintf("Failed to scan directories: %v", err),
			Cause:   err,
			Suggestions: []string{
				"Check that the specified directories exist",
				"Ensure you have read permissions for the directories",
				"Verify the directory paths are correct",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}

	if len(packageDirs) == 0 {
		if r.diagnostics != nil {
			r.diagnostics.Warn("No Go packages found in specified directories")
		}
		return &RunError{
			Kind:    ErrorKindUsage,
			Message: "No Go packages found in specified directories",
			Suggestions: []string{
				"Ensure the directories contain Go files",
				"Check that Go files have valid package declarations",
				"Try scanning parent directories or use './...' pattern",
			},
			Context: map[string]interface{}{
				"directories": config.Directories,
			},
		}
	}

	if r.diagnostics != nil {
		r.diagnostics.Info("Found %d packages to scan", len(packageDirs))
		r.diagnostics.Indent()
		for _, dir := range packageDirs {
			r.diagnostics.List("%s", dir)
		}
		r.diagnostics.Unindent()
	} else if config.Verbose {
		fmt.Printf("Found %d packages to scan\n", len(packageDirs))
		fmt.Printf("Package directories:\n")
		for i, dir := range packageDirs {
			fmt.Printf("  %d. %s\n", i+1, dir)
		}
		fmt.Printf("\n")
	}

	r.summary.PackagesScanned = len(packageDirs)

	// Descriptor lines are buffered for the whole run so a failed scan never
	// leaves a partial output file behind.
	var output bytes.Buffer
	emitter := scanner.New(symbol.NewLinkerResolver(), &output)

	for i, packageDir := range packageDirs {
		if r.diagnostics != nil {
			r.diagnostics.Verbose("Scanning package %d/%d: %s", i+1, len(packageDirs), packageDir)
		} else if config.Verbose {
			fmt.Printf("  Scanning package %d/%d: %s\n", i+1, len(packageDirs), packageDir)
		}

		root, err := r.loadDeclarations(packageDir, config)
		if err != nil {
			return err
		}

		stats, err := emitter.Scan(root)
		if err != nil {
			return &RunError{
				Kind:    ErrorKindEmit,
				Message: fmt.Sprintf("Failed to emit descriptors for %s: %v", packageDir, err),
				Cause:   err,
				Suggestions: []string{
					"Check the marker reported in the error message",
					"Ensure every marker has a non-empty kind segment",
				},
				Context: map[string]interface{}{
					"directory": packageDir,
					"package":   root.Name,
				},
			}
		}

		r.summary.DeclarationsVisited += stats.Visited
		r.summary.DescriptorsEmitted += stats.Emitted
		r.summary.Functions += stats.Functions
		r.summary.Methods += stats.Methods
		r.summary.Constructors += stats.Constructors

		if r.diagnostics != nil {
			r.diagnostics.Progress("Scanned %s (%d descriptors)", packageDir, stats.Emitted)
		}
	}

	if err := r.writeOutput(config.OutputPath, output.Bytes()); err != nil {
		return err
	}

	if r.diagnostics != nil {
		r.diagnostics.Verbose("Scan finished in %s", time.Since(startTime).Round(time.Millisecond))
	} else if config.Verbose {
		fmt.Printf("Scan finished in %s\n", time.Since(startTime).Round(time.Millisecond))
	}

	return nil
}

// loadDeclarations builds the declaration tree for one package directory,
// through the build system by default or the pure parser with --syntax-only.
func (r *Runner) loadDeclarations(packageDir string, config Config) (*decl.Declaration, error) {
	if config.SyntaxOnly {
		pkgPath, err := r.resolver.ImportPath(packageDir, config.ModuleName)
		if err != nil {
			return nil, &RunError{
				Kind:    ErrorKindResolve,
				Message: fmt.Sprintf("Failed to resolve import path for %s: %v", packageDir, err),
				Cause:   err,
				Suggestions: []string{
					"Check your go.mod file exists and is valid",
					"Try specifying --module flag explicitly",
				},
				Context: map[string]interface{}{
					"directory": packageDir,
				},
			}
		}

		root, err := r.frontend.ParseDirectory(packageDir, pkgPath)
		if err != nil {
			return nil, &RunError{
				Kind:    ErrorKindParse,
				Message: fmt.Sprintf("Failed to parse package %s: %v", packageDir, err),
				Cause:   err,
				Suggestions: []string{
					"Check for syntax errors in Go files",
					"Ensure the directory holds a single package",
				},
				Context: map[string]interface{}{
					"directory":   packageDir,
					"import_path": pkgPath,
				},
			}
		}
		return root, nil
	}

	root, err := r.frontend.LoadPackage(packageDir)
	if err != nil {
		return nil, &RunError{
			Kind:    ErrorKindParse,
			Message: fmt.Sprintf("Failed to load package %s: %v", packageDir, err),
			Cause:   err,
			Suggestions: []string{
				"Check that the package compiles with 'go build'",
				"Run 'go mod tidy' to ensure dependencies are available",
				"Try --syntax-only to scan without type checking",
			},
			Context: map[string]interface{}{
				"directory": packageDir,
			},
		}
	}
	return root, nil
}

// writeOutput flushes the buffered descriptor lines to the configured sink
func (r *Runner) writeOutput(outputPath string, data []byte) error {
	if outputPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return &RunError{
				Kind:    ErrorKindEmit,
				Message: fmt.Sprintf("Failed to write descriptors to stdout: %v", err),
				Cause:   err,
			}
		}
		return nil
	}

	file, err := os.Create(outputPath)
	if err != nil {
		wrapped := utils.WrapCreateError(fmt.Sprintf("output file %s", outputPath), err)
		return &RunError{
			Kind:    ErrorKindEmit,
			Message: wrapped.Error(),
			Cause:   err,
			Suggestions: []string{
				"Check that the output directory exists",
				"Ensure you have write permissions for the output path",
			},
			Context: map[string]interface{}{
				"output_path": outputPath,
			},
		}
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		wrapped := utils.WrapWriteError(fmt.Sprintf("output file %s", outputPath), err)
		return &RunError{
			Kind:    ErrorKindEmit,
			Message: wrapped.Error(),
			Cause:   err,
			Context: map[string]interface{}{
				"output_path": outputPath,
			},
		}
	}

	return nil
}
