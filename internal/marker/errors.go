package marker

import "fmt"

// DecodeError is implemented by every error the codec returns, so callers
// can surface the fix hint without knowing the concrete type.
type DecodeError interface {
	error
	Suggestion() string
}

// SyntaxError reports marker text that claims the directive prefix but whose
// head is not structurally valid (empty or non-identifier kind, stray
// characters before the payload delimiter).
type SyntaxError struct {
	Raw    string // Original marker text
	Reason string // What is wrong with it
	Hint   string // Suggested fix
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid marker %q: %s. %s", e.Raw, e.Reason, e.Hint)
}

func (e *SyntaxError) Suggestion() string { return e.Hint }

// MalformedError reports a structurally valid marker whose payload does not
// satisfy the directive being decoded, for example a method marker with no
// import name or an aggregate marker with no class name.
type MalformedError struct {
	Raw    string // Original marker text
	Reason string // What is missing
	Hint   string // Suggested fix
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed marker %q: %s. %s", e.Raw, e.Reason, e.Hint)
}

func (e *MalformedError) Suggestion() string { return e.Hint }
