package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wasmfoundry/hostlink/internal/utils"
)

// DirectoryScanner expands directory arguments into the package
// directories a run will scan
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanDirectories resolves the provided directory arguments to package
// directories. Go-style patterns like "./..." include every directory
// underneath that contains Go files; a plain directory is included only
// when it holds Go files itself. Results keep argument order, with
// duplicates dropped.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	appendDir := func(dir string) error {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return utils.WrapProcessError(fmt.Sprintf("path resolution %s", dir), err)
		}
		if !seen[absDir] {
			seen[absDir] = true
			packageDirs = append(packageDirs, dir)
		}
		return nil
	}

	for _, rootDir := range rootDirs {
		// Handle Go-style recursive patterns like "./..."
		if baseDir, recursive := strings.CutSuffix(rootDir, "/..."); recursive {
			if baseDir == "" {
				baseDir = "."
			}

			dirs, err := s.fileProcessor.ScanDirectoriesWithGoFiles([]string{baseDir})
			if err != nil {
				return nil, err
			}
			for _, dir := range dirs {
				if err := appendDir(dir); err != nil {
					return nil, err
				}
			}
			continue
		}

		hasGo, err := s.fileProcessor.HasGoFiles(rootDir)
		if err != nil {
			return nil, utils.WrapProcessError(fmt.Sprintf("directory read %s", rootDir), err)
		}
		if hasGo {
			if err := appendDir(rootDir); err != nil {
				return nil, err
			}
		}
	}

	return packageDirs, nil
}
