// Package descriptor defines the host-import descriptor line format emitted
// by the hostlink scanner. Downstream glue generators import this package to
// render and parse descriptor lines without depending on scanner internals.
//
// One line per exported declaration, S-expression shaped:
//
//	(<kind> ["<class>"] <symbol> ["<import>"] ("<p1>" "<p2>" ...) "<ret>")
//
// The class segment is present for every kind except "func"; the import
// segment is present for every kind except "constructor".
package descriptor

import (
	"fmt"
	"strings"
)

// Kinds with format-level behavior. The kind field is an open vocabulary;
// anything else renders like a method.
const (
	KindFunc        = "func"
	KindMethod      = "method"
	KindConstructor = "constructor"
)

// Descriptor is one host-import descriptor: everything a glue generator
// needs to bind a host function to the declaration it was scanned from.
type Descriptor struct {
	Kind   string   // Directive kind, e.g. "method"
	Class  string   // Exported class name, "" only for kind "func"
	Symbol string   // Stable external symbol, written unquoted
	Import string   // Host import name, unused for constructors
	Params []string // Parameter type spellings, declaration order
	Return string   // Return type spelling, "void" for none
}

// InvariantError reports a descriptor whose class-scoped kind has no class
// name. This is an internal-consistency failure of the producer, not a user
// error: the scanner refuses to write such a line.
type InvariantError struct {
	Kind   string // Offending kind
	Symbol string // Symbol the descriptor was built for
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("descriptor invariant violated: kind %q requires a class name (symbol %s)", e.Kind, e.Symbol)
}

// Validate checks the class invariant: every kind except "func" must carry a
// class name.
func (d Descriptor) Validate() error {
	if d.Kind != KindFunc && d.Class == "" {
		return &InvariantError{Kind: d.Kind, Symbol: d.Symbol}
	}
	return nil
}

// String renders the descriptor as one line, without the trailing newline.
// The segment rules are fixed: no class for "func", no import for
// "constructor", parameters always parenthesized even when empty.
func (d Descriptor) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(d.Kind)
	if d.Kind != KindFunc {
		b.WriteString(" \"")
		b.WriteString(d.Class)
		b.WriteString("\"")
	}
	b.WriteString(" ")
	b.WriteString(d.Symbol)
	if d.Kind != KindConstructor {
		b.WriteString(" \"")
		b.WriteString(d.Import)
		b.WriteString("\"")
	}
	b.WriteString(" (")
	for i, p := range d.Params {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("\"")
		b.WriteString(p)
		b.WriteString("\"")
	}
	b.WriteString(") \"")
	b.WriteString(d.Return)
	b.WriteString("\")")
	return b.String()
}
