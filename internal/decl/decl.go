// Package decl defines the resolved declaration tree that the scanner walks.
// Front ends (see internal/gofront) produce these nodes; the scanner consumes
// them without ever touching the underlying parser representation.
package decl

// Kind classifies a declaration node
type Kind int

const (
	// KindPackage is a package-level container node (the tree root)
	KindPackage Kind = iota
	// KindAggregate is a named type that can own member declarations
	KindAggregate
	// KindFunction is a function or method declaration
	KindFunction
	// KindOther covers declarations the scanner recurses through but never emits
	KindOther
)

// String returns the string representation of the declaration kind
func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindAggregate:
		return "aggregate"
	case KindFunction:
		return "function"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Position is the source location of a declaration, used in error reporting
type Position struct {
	File string // File path
	Line int    // Line number (1-based)
}

// Signature captures the callable surface of a function declaration.
// Parameter and result spellings are canonical type strings produced by the
// front end; the scanner copies them into descriptors without interpretation.
type Signature struct {
	Params []string // Parameter type spellings, in declaration order
	Result string   // Result spelling ("void" when the function returns nothing)
}

// Declaration is one node of the resolved declaration tree
type Declaration struct {
	Kind        Kind
	Name        string     // Declared name ("" for anonymous declarations)
	PkgPath     string     // Import path of the owning package
	Receiver    string     // Receiver type name for methods, "" otherwise
	PtrReceiver bool       // Whether the receiver is a pointer
	Sig         *Signature // Non-nil iff Kind == KindFunction
	Pos         Position
	Children    []*Declaration

	annotation    string
	hasAnnotation bool
}

// IsFunction reports whether the node is a function or method declaration
func (d *Declaration) IsFunction() bool { return d.Kind == KindFunction }

// IsAggregate reports whether the node is a named type that can own members
func (d *Declaration) IsAggregate() bool { return d.Kind == KindAggregate }

// Annotation returns the raw annotation text attached to the declaration.
// The boolean reports whether an annotation is present at all, so callers
// never have to treat the empty string as a sentinel.
func (d *Declaration) Annotation() (string, bool) {
	return d.annotation, d.hasAnnotation
}

// SetAnnotation attaches raw annotation text to the declaration
func (d *Declaration) SetAnnotation(text string) {
	d.annotation = text
	d.hasAnnotation = true
}

// ClearAnnotation removes any attached annotation
func (d *Declaration) ClearAnnotation() {
	d.annotation = ""
	d.hasAnnotation = false
}

// AddChild appends a child declaration and returns it for chaining
func (d *Declaration) AddChild(child *Declaration) *Declaration {
	d.Children = append(d.Children, child)
	return child
}

// QualifiedName returns the name a linker-style resolver works from:
// "Receiver.Name" for methods, the bare name otherwise.
func (d *Declaration) QualifiedName() string {
	if d.Receiver != "" {
		return d.Receiver + "." + d.Name
	}
	return d.Name
}
