package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/wasmfoundry/hostlink/internal/utils"
)

// ModuleResolver maps package directories to import paths using the
// enclosing module's go.mod file.
type ModuleResolver struct {
	modCache *utils.Cache[string, string]
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		modCache: utils.NewCache[string, string](),
	}
}

// ImportPath resolves the import path of the package in dir. The module
// root is found by walking up from dir to the nearest go.mod; customModule,
// when set, replaces the module declaration but keeps the resolved root so
// subdirectories retain their path suffix. Without a go.mod anywhere above
// dir, customModule is joined relative to the working directory instead.
func (r *ModuleResolver) ImportPath(dir string, customModule string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", utils.WrapResolveError(fmt.Sprintf("package directory %s", dir), err)
	}

	if rootDir, ok := r.findGoMod(absDir); ok {
		moduleName := customModule
		if moduleName == "" {
			moduleName, err = r.moduleName(filepath.Join(rootDir, "go.mod"))
			if err != nil {
				return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)", err)
			}
		}
		return r.joinImportPath(moduleName, rootDir, absDir)
	}

	if customModule == "" {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module flag)",
			fmt.Errorf("no go.mod found above %s", absDir))
	}

	workDir, err := os.Getwd()
	if err != nil {
		return "", utils.WrapResolveError("working directory", err)
	}
	return r.joinImportPath(customModule, workDir, absDir)
}

// findGoMod walks up from dir looking for a go.mod file and returns the
// directory that holds it.
func (r *ModuleResolver) findGoMod(dir string) (string, bool) {
	for {
		if info, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			return "", false
		}
		dir = parent
	}
}

// moduleName reads the module declaration from a go.mod file. Parsed
// declarations are cached against the file's modification time, so repeated
// lookups during a multi-directory run only parse once.
func (r *ModuleResolver) moduleName(goModPath string) (string, error) {
	if name, ok := r.modCache.GetWithFileValidation(goModPath, goModPath); ok {
		return name, nil
	}

	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", utils.WrapLoadError(fmt.Sprintf("go.mod file %s", goModPath), err)
	}

	modFile, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return "", utils.WrapParseError(fmt.Sprintf("go.mod file %s", goModPath), err)
	}

	if modFile.Module == nil || modFile.Module.Mod.Path == "" {
		return "", fmt.Errorf("module declaration not found in %s", goModPath)
	}

	name := modFile.Module.Mod.Path
	// A failed cache write only costs a re-parse on the next lookup.
	_ = r.modCache.SetWithFileInfo(goModPath, name, goModPath)

	return name, nil
}

// joinImportPath appends a package directory's path under the module root
// to the module name.
func (r *ModuleResolver) joinImportPath(moduleName, rootDir, pkgDir string) (string, error) {
	relPath, err := filepath.Rel(rootDir, pkgDir)
	if err != nil {
		return "", utils.WrapResolveError(fmt.Sprintf("relative path of %s", pkgDir), err)
	}

	importPath := filepath.ToSlash(relPath)
	if importPath == "." {
		return moduleName, nil
	}
	if importPath == ".." || strings.HasPrefix(importPath, "../") {
		return "", fmt.Errorf("directory %s is outside module root %s", pkgDir, rootDir)
	}

	return moduleName + "/" + importPath, nil
}
