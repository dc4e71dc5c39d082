package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileProcessor provides the directory walking primitives behind package
// discovery.
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, entry os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, entry os.DirEntry) bool

// DefaultGoFileFilter matches buildable Go sources: .go files that are not
// tests and that the Go tool itself would not ignore.
func DefaultGoFileFilter() FileFilter {
	return func(path string, entry os.DirEntry) bool {
		if entry.IsDir() {
			return false
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return false
		}
		return !strings.HasPrefix(name, "_") && !strings.HasPrefix(name, ".")
	}
}

// TestGoFileFilter filters for Go test files
func TestGoFileFilter() FileFilter {
	return func(path string, entry os.DirEntry) bool {
		if entry.IsDir() {
			return false
		}

		return strings.HasSuffix(entry.Name(), "_test.go")
	}
}

// DefaultDirectoryFilter skips directories that never hold scannable source
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
	}

	return func(path string, entry os.DirEntry) bool {
		if !entry.IsDir() {
			return true
		}

		name := entry.Name()

		// Hidden and underscore-prefixed directories are invisible to the
		// Go tool, so they are invisible to the scanner as well.
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return false
		}

		return !skipDirs[name]
	}
}

// ScanDirectoriesWithGoFiles scans directory trees and returns every
// directory containing Go files
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var packageDirs []string
	visited := make(map[string]bool)

	for _, rootDir := range rootDirs {
		dirs, err := fp.scanDirectoryRecursive(rootDir, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, dirs...)
	}

	return packageDirs, nil
}

// scanDirectoryRecursive recursively scans a directory for Go files
func (fp *FileProcessor) scanDirectoryRecursive(dir string, visited map[string]bool) ([]string, error) {
	// Resolve absolute path to handle symlinks and avoid cycles
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("path resolution %s", dir), err)
	}

	if visited[absDir] {
		return nil, nil
	}
	visited[absDir] = true

	var packageDirs []string

	hasGoFiles, err := fp.HasGoFiles(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("Go file check in %s", dir), err)
	}

	if hasGoFiles {
		packageDirs = append(packageDirs, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, WrapProcessError(fmt.Sprintf("directory read %s", dir), err)
	}

	directoryFilter := DefaultDirectoryFilter()

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())
		if !directoryFilter(entryPath, entry) {
			continue
		}

		subDirs, err := fp.scanDirectoryRecursive(entryPath, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, subDirs...)
	}

	return packageDirs, nil
}

// HasGoFiles checks if a directory contains any buildable .go files
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	fileFilter := DefaultGoFileFilter()

	for _, entry := range entries {
		if fileFilter(filepath.Join(dir, entry.Name()), entry) {
			return true, nil
		}
	}

	return false, nil
}
