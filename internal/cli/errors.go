package cli

import "fmt"

// ErrorKind classifies runner failures for reporting
type ErrorKind int

const (
	ErrorKindUsage ErrorKind = iota
	ErrorKindFileSystem
	ErrorKindResolve
	ErrorKindParse
	ErrorKindEmit
)

// RunError carries everything the reporter needs to explain a failed run.
type RunError struct {
	Kind        ErrorKind
	Message     string
	File        string
	Line        int
	Cause       error
	Suggestions []string
	Context     map[string]interface{}
}

// Error implements the error interface
func (e *RunError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *RunError) Unwrap() error {
	return e.Cause
}
