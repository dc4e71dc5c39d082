package descriptor

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParseError reports a line that does not conform to the descriptor format
type ParseError struct {
	Line   string // Offending line
	Reason string // Why it was rejected
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed descriptor line %q: %s", e.Line, e.Reason)
}

// wireLine is the grammar of one descriptor line. The optional class and
// import segments are disambiguated by token type: quoted segments are
// String tokens, symbols and kinds are Atom tokens.
type wireLine struct {
	Kind   string   `parser:"'(' @Atom"`
	Class  *string  `parser:"@String?"`
	Symbol string   `parser:"@Atom"`
	Import *string  `parser:"@String?"`
	Params []string `parser:"'(' @String* ')'"`
	Return string   `parser:"@String ')'"`
}

var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Atom", Pattern: `[^\s"()][^\s"]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var lineParser = participle.MustBuild[wireLine](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse decodes one descriptor line. Segment presence is enforced strictly:
// a line the writer could not have produced is rejected even when it is
// structurally parseable. Symbols are written unquoted, so a symbol must not
// begin with '(' or '"'; linker-style symbols always begin with the package
// path and satisfy this.
func Parse(line string) (Descriptor, error) {
	parsed, err := lineParser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return Descriptor{}, &ParseError{Line: line, Reason: err.Error()}
	}

	d := Descriptor{
		Kind:   parsed.Kind,
		Symbol: parsed.Symbol,
		Params: parsed.Params,
		Return: parsed.Return,
	}

	switch {
	case parsed.Class != nil && d.Kind == KindFunc:
		return Descriptor{}, &ParseError{Line: line, Reason: `kind "func" cannot carry a class segment`}
	case parsed.Import != nil && d.Kind == KindConstructor:
		return Descriptor{}, &ParseError{Line: line, Reason: `kind "constructor" cannot carry an import segment`}
	case parsed.Import == nil && d.Kind != KindConstructor:
		return Descriptor{}, &ParseError{Line: line, Reason: "missing import segment"}
	}

	if parsed.Class != nil {
		d.Class = *parsed.Class
	}
	if parsed.Import != nil {
		d.Import = *parsed.Import
	}

	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// ParseAll decodes a whole descriptor stream, one descriptor per
// non-blank line, preserving order.
func ParseAll(r io.Reader) ([]Descriptor, error) {
	var out []Descriptor
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		d, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read descriptor stream: %w", err)
	}
	return out, nil
}
