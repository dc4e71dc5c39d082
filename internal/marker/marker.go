// Package marker decodes hostlink directive markers.
//
// A marker is annotation text of the form
//
//	hostlink::<kind>[:<payload>]
//
// The remainder after the prefix splits on the FIRST colon: everything before
// it is the kind, everything after it is the payload, kept verbatim even when
// it contains further colons. On an aggregate declaration the payload names
// the exported class; on a function declaration it names the host import.
// Decoding is pure and performs no I/O.
package marker

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Prefix is the wire prefix every directive marker starts with. Text without
// it is not a marker and is ignored by the scanner.
const Prefix = "hostlink::"

// Kind tags with defined emitter behavior. The codec does not restrict the
// vocabulary to these; unknown kinds decode fine and are emitted as written.
const (
	KindFunc        = "func"
	KindMethod      = "method"
	KindConstructor = "constructor"
)

// funcHead is the literal head a free-function marker must carry for the
// scanner to emit it outside any class context.
const funcHead = Prefix + KindFunc + ":"

// Marker is a decoded directive marker, still uninterpreted: ClassDirective
// and MemberDirective turn it into something the emitter can act on.
type Marker struct {
	Kind       string // Directive kind, e.g. "method"
	Payload    string // Everything after the first colon, verbatim
	HasPayload bool   // Whether the first-colon delimiter was present
	Raw        string // Original marker text
}

// Directive is the interpreted form of a member marker, consumed by the
// emitter and never persisted.
type Directive struct {
	Kind   string // Directive kind, emitted as written
	Class  string // Enclosing class name, "" for free functions
	Import string // Host import name, "" for constructors
}

// markerHead is the structural grammar of a directive head, "hostlink::<kind>".
// The payload is split off before parsing because its content is verbatim
// user text that no fixed token set can cover.
type markerHead struct {
	Tool      string `parser:"@Tool"`
	Separator string `parser:"@Separator"`
	Kind      string `parser:"@(Ident | Tool)"`
}

var headLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Tool", Pattern: `hostlink`},
	{Name: "Separator", Pattern: `::`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})

var headParser = participle.MustBuild[markerHead](
	participle.Lexer(headLexer),
)

// Decode decodes marker text. It returns ok=false when the text does not
// start with the directive prefix (that is never an error: ordinary comments
// and prefix-like misspellings are simply not markers). Text that does carry
// the prefix must have a structurally valid head or Decode returns a
// *SyntaxError.
func Decode(text string) (Marker, bool, error) {
	if !strings.HasPrefix(text, Prefix) {
		return Marker{}, false, nil
	}

	rest := text[len(Prefix):]
	kindPart, payload, hasPayload := strings.Cut(rest, ":")

	head, err := headParser.ParseString("", Prefix+kindPart)
	if err != nil {
		return Marker{}, false, &SyntaxError{
			Raw:    text,
			Reason: "marker kind must be an identifier",
			Hint:   "write hostlink::<kind>[:<payload>], e.g. hostlink::method:doIt",
		}
	}

	return Marker{
		Kind:       head.Kind,
		Payload:    payload,
		HasPayload: hasPayload,
		Raw:        text,
	}, true, nil
}

// HasFuncHead reports whether text begins with the literal free-function
// marker head "hostlink::func:". The scanner uses this to emit marked
// functions that appear outside any class context.
func HasFuncHead(text string) bool {
	return strings.HasPrefix(text, funcHead)
}

// HasConstructorHead reports whether text is a constructor marker, with or
// without a payload. The front end uses this to attach factory functions to
// the aggregate they construct.
func HasConstructorHead(text string) bool {
	rest, ok := strings.CutPrefix(text, Prefix+KindConstructor)
	if !ok {
		return false
	}
	return rest == "" || strings.HasPrefix(rest, ":")
}

// ClassDirective interprets m as an aggregate-level marker and returns the
// class name it carries. The kind of an aggregate marker is ignored; only
// the payload matters. A missing delimiter or empty class name is a
// *MalformedError so that a user typo never reaches the emitter as an
// invariant violation.
func ClassDirective(m Marker) (string, error) {
	if !m.HasPayload || m.Payload == "" {
		return "", &MalformedError{
			Raw:    m.Raw,
			Reason: "aggregate marker is missing its class name",
			Hint:   "write hostlink::class:<ClassName> on the aggregate declaration",
		}
	}
	return m.Payload, nil
}

// MemberDirective interprets m as a function-level marker inside the given
// class context ("" for free functions). Constructors carry no import name;
// every other kind requires the payload delimiter, though the import name
// itself may be empty. The kind vocabulary is not validated here.
func MemberDirective(m Marker, class string) (Directive, error) {
	d := Directive{Kind: m.Kind, Class: class}
	if m.Kind == KindConstructor {
		return d, nil
	}
	if !m.HasPayload {
		return Directive{}, &MalformedError{
			Raw:    m.Raw,
			Reason: m.Kind + " marker is missing its import name",
			Hint:   "write hostlink::" + m.Kind + ":<importName> on the declaration",
		}
	}
	d.Import = m.Payload
	return d, nil
}
