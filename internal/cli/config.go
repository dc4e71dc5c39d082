package cli

import (
	"golang.org/x/mod/module"

	"github.com/wasmfoundry/hostlink/internal/utils"
)

// Config holds the configuration for a single scanner run
type Config struct {
	// Directories is the list of directories to scan for annotated Go files.
	// A directory ending in "/..." is scanned recursively.
	Directories []string

	// ModuleName is the custom module name for import paths
	// If empty, will be determined from go.mod file
	ModuleName string

	// OutputPath is the file descriptor lines are written to.
	// If empty, descriptors go to stdout.
	OutputPath string

	// SyntaxOnly selects the parse-only frontend, skipping type checking
	SyntaxOnly bool

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// Validate checks the configuration before a run starts
func (c *Config) Validate() error {
	dirChain := utils.NewValidatorChain(
		utils.SliceNotEmpty[string]("directories"),
		utils.ValidateEach("directories", utils.NotEmpty("directory")),
	)
	if err := dirChain.Validate(c.Directories); err != nil {
		return err
	}

	moduleCheck := utils.Conditional(
		func(name string) bool { return name != "" },
		utils.Custom("module", "is not a valid import path", func(name string) bool {
			return module.CheckImportPath(name) == nil
		}),
	)
	return moduleCheck(c.ModuleName)
}
