package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryScanner_ScanDirectories(t *testing.T) {
	// Create temporary directory structure for testing
	tempDir, err := os.MkdirTemp("", "hostlink_scanner_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create test directory structure
	// tempDir/
	//   ├── console/
	//   │   ├── console.go
	//   │   └── internal/
	//   │       └── buffer.go
	//   ├── widgets/
	//   │   ├── widget.go
	//   │   └── widget_test.go (ignored)
	//   ├── vendor/
	//   │   └── dependency.go (skipped)
	//   └── docs/
	//       (no Go files)

	consoleDir := filepath.Join(tempDir, "console")
	internalDir := filepath.Join(consoleDir, "internal")
	widgetsDir := filepath.Join(tempDir, "widgets")
	vendorDir := filepath.Join(tempDir, "vendor")
	docsDir := filepath.Join(tempDir, "docs")

	require.NoError(t, os.MkdirAll(internalDir, 0755))
	require.NoError(t, os.MkdirAll(widgetsDir, 0755))
	require.NoError(t, os.MkdirAll(vendorDir, 0755))
	require.NoError(t, os.MkdirAll(docsDir, 0755))

	goFiles := map[string]string{
		filepath.Join(consoleDir, "console.go"):   "package console\n\ntype Console struct{}",
		filepath.Join(internalDir, "buffer.go"):   "package internal\n\ntype Buffer struct{}",
		filepath.Join(widgetsDir, "widget.go"):    "package widgets\n\ntype Widget struct{}",
		filepath.Join(vendorDir, "dependency.go"): "package vendor\n\ntype Dependency struct{}",
	}

	for filePath, content := range goFiles {
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// Test files never make a directory scannable on their own
	testFile := filepath.Join(widgetsDir, "widget_test.go")
	require.NoError(t, os.WriteFile(testFile, []byte("package widgets"), 0644))

	scanner := NewDirectoryScanner()

	t.Run("plain directory includes only itself", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{consoleDir})
		require.NoError(t, err)
		assert.Equal(t, []string{consoleDir}, dirs)
	})

	t.Run("plain directory without Go files yields nothing", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{docsDir})
		require.NoError(t, err)
		assert.Empty(t, dirs)
	})

	t.Run("multiple directories keep argument order", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{widgetsDir, consoleDir})
		require.NoError(t, err)
		assert.Equal(t, []string{widgetsDir, consoleDir}, dirs)
	})

	t.Run("recursive pattern walks the tree", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{tempDir + "/..."})
		require.NoError(t, err)

		// vendor is skipped, docs has no Go files
		assert.Equal(t, []string{consoleDir, internalDir, widgetsDir}, dirs)
	})

	t.Run("relative recursive pattern ./...", func(t *testing.T) {
		// Change to temp directory for relative path testing
		originalDir, err := os.Getwd()
		require.NoError(t, err)
		defer os.Chdir(originalDir)
		require.NoError(t, os.Chdir(tempDir))

		dirs, err := scanner.ScanDirectories([]string{"./..."})
		require.NoError(t, err)
		assert.Equal(t, []string{"console", filepath.Join("console", "internal"), "widgets"}, dirs)
	})

	t.Run("duplicates are dropped", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{widgetsDir, tempDir + "/..."})
		require.NoError(t, err)

		// widgets appears once, in argument position
		assert.Equal(t, []string{widgetsDir, consoleDir, internalDir}, dirs)
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		_, err := scanner.ScanDirectories([]string{"/nonexistent/path"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to process")
	})

	t.Run("nonexistent pattern root", func(t *testing.T) {
		_, err := scanner.ScanDirectories([]string{"/nonexistent/path/..."})
		assert.Error(t, err)
	})
}
