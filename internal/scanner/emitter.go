package scanner

import (
	"fmt"

	"github.com/wasmfoundry/hostlink/internal/decl"
	"github.com/wasmfoundry/hostlink/internal/marker"
	"github.com/wasmfoundry/hostlink/pkg/descriptor"
)

// emit writes one descriptor line for d if d is a function-like declaration
// carrying its own marker; anything else is a silent no-op. class is the
// enclosing class name, "" outside any class context. Decode failures and
// invariant violations abort the pass.
func (s *Scanner) emit(d *decl.Declaration, class string) error {
	if !d.IsFunction() {
		return nil
	}
	text, ok := d.Annotation()
	if !ok {
		return nil
	}

	m, ok, err := marker.Decode(text)
	if err != nil {
		return wrapPos(d, err)
	}
	if !ok {
		return nil
	}

	dir, err := marker.MemberDirective(m, class)
	if err != nil {
		return wrapPos(d, err)
	}

	params, ret, err := extractSignature(d)
	if err != nil {
		return wrapPos(d, err)
	}

	sym, err := s.resolver.Resolve(d)
	if err != nil {
		return wrapPos(d, fmt.Errorf("resolve symbol: %w", err))
	}

	desc := descriptor.Descriptor{
		Kind:   dir.Kind,
		Class:  dir.Class,
		Symbol: sym,
		Import: dir.Import,
		Params: params,
		Return: ret,
	}
	if err := desc.Validate(); err != nil {
		return wrapPos(d, err)
	}

	if _, err := fmt.Fprintln(s.out, desc.String()); err != nil {
		return fmt.Errorf("write descriptor for %s: %w", d.QualifiedName(), err)
	}

	s.stats.Emitted++
	switch dir.Kind {
	case marker.KindFunc:
		s.stats.Functions++
	case marker.KindConstructor:
		s.stats.Constructors++
	default:
		s.stats.Methods++
	}
	return nil
}
