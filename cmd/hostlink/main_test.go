package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLIArgumentParsing exercises the CLI surface by running the built binary
func TestCLIArgumentParsing(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	tempDir, err := os.MkdirTemp("", "hostlink_cli_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	binaryPath := filepath.Join(tempDir, "hostlink")

	// Build the binary
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = "." // Build in current directory
	buildOut, buildErr := cmd.CombinedOutput()
	require.NoError(t, buildErr, "Failed to build CLI binary: %s", buildOut)

	// Lay out a scannable module
	moduleDir := filepath.Join(tempDir, "demo")
	widgetsDir := filepath.Join(moduleDir, "widgets")
	require.NoError(t, os.MkdirAll(widgetsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(moduleDir, "go.mod"), []byte("module example.com/demo\n\ngo 1.25\n"), 0644))

	source := `package widgets

// hostlink::class:Widget
type Widget struct{}

// hostlink::method:doIt
func (w *Widget) DoIt(count int32) {}

// hostlink::func:freeFn
func FreeFn() {}
`
	require.NoError(t, os.WriteFile(filepath.Join(widgetsDir, "widgets.go"), []byte(source), 0644))

	expectedDescriptors := `(method "Widget" example.com/demo/widgets.(*Widget).DoIt "doIt" ("int32") "void")
(func example.com/demo/widgets.FreeFn "freeFn" () "void")
`

	t.Run("help flag", func(t *testing.T) {
		cmd := exec.Command(binaryPath, "--help")
		output, err := cmd.CombinedOutput()

		// Help should exit with code 0
		assert.NoError(t, err)

		outputStr := string(output)
		assert.Contains(t, outputStr, "Usage:")
		assert.Contains(t, outputStr, "hostlink Host Import Scanner")
		assert.Contains(t, outputStr, "-module")
		assert.Contains(t, outputStr, "-syntax-only")
		assert.Contains(t, outputStr, "directory-paths")
	})

	t.Run("no arguments", func(t *testing.T) {
		cmd := exec.Command(binaryPath)
		output, err := cmd.CombinedOutput()

		// Should exit with error code
		assert.Error(t, err)

		outputStr := string(output)
		assert.Contains(t, outputStr, "At least one directory path is required")
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		cmd := exec.Command(binaryPath, "--syntax-only", "/nonexistent/directory")
		output, err := cmd.CombinedOutput()

		// Should exit with error code
		assert.Error(t, err)

		outputStr := string(output)
		assert.Contains(t, outputStr, "ERROR: Scan Failed")
		assert.Contains(t, outputStr, "File System Error")
	})

	t.Run("descriptors to stdout stay clean", func(t *testing.T) {
		cmd := exec.Command(binaryPath, "--syntax-only", widgetsDir)
		stdout, err := cmd.Output()
		require.NoError(t, err)

		// Progress chatter goes to stderr, so stdout is exactly the lines
		assert.Equal(t, expectedDescriptors, string(stdout))
	})

	t.Run("descriptors to file", func(t *testing.T) {
		outPath := filepath.Join(tempDir, "imports.desc")

		cmd := exec.Command(binaryPath, "--syntax-only", "-o", outPath, widgetsDir)
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "scan failed: %s", output)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Equal(t, expectedDescriptors, string(data))

		assert.Contains(t, string(output), "Scan Completed Successfully!")
		assert.Contains(t, string(output), "Emitted 2 descriptors")
	})

	t.Run("quiet mode suppresses the summary", func(t *testing.T) {
		outPath := filepath.Join(tempDir, "quiet.desc")

		cmd := exec.Command(binaryPath, "--quiet", "--syntax-only", "-o", outPath, widgetsDir)
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "scan failed: %s", output)

		assert.NotContains(t, string(output), "Scan Completed Successfully!")
		assert.FileExists(t, outPath)
	})
}
