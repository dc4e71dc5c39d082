// Package scanner walks a resolved declaration tree, decodes hostlink
// markers and emits one descriptor line per exported declaration.
//
// Traversal visits every declaration exactly once, top-down, children after
// their parent. The only context that propagates is the enclosing class name:
// when an aggregate's own marker decodes to a class directive, each direct
// child is offered for emission with that class name. A class marker does not
// export members by itself; every member opts in with its own marker.
package scanner

import (
	"fmt"
	"io"

	"github.com/wasmfoundry/hostlink/internal/decl"
	"github.com/wasmfoundry/hostlink/internal/marker"
	"github.com/wasmfoundry/hostlink/internal/symbol"
)

// Stats summarizes one scan pass
type Stats struct {
	Visited      int // Declarations visited
	Emitted      int // Descriptor lines written
	Functions    int // Freestanding function directives
	Methods      int // Method and other class-scoped directives
	Constructors int // Constructor directives
}

// Scanner drives one synchronous pass over a declaration tree. It owns the
// output sink for the duration of the pass; nothing is cached between runs.
type Scanner struct {
	resolver symbol.Resolver
	out      io.Writer
	stats    Stats
}

// New creates a Scanner writing descriptor lines to out, naming symbols
// through resolver.
func New(resolver symbol.Resolver, out io.Writer) *Scanner {
	return &Scanner{resolver: resolver, out: out}
}

// Scan walks the tree rooted at root and emits descriptors in discovery
// order. The tree is treated as read-only. The first failure aborts the
// pass; lines already written stay written, so callers must treat a failed
// run as having no usable output.
func (s *Scanner) Scan(root *decl.Declaration) (Stats, error) {
	s.stats = Stats{}
	if err := s.walk(root); err != nil {
		return s.stats, err
	}
	return s.stats, nil
}

func (s *Scanner) walk(d *decl.Declaration) error {
	s.stats.Visited++

	switch {
	case d.IsAggregate():
		if text, ok := d.Annotation(); ok {
			if err := s.sweepAggregate(d, text); err != nil {
				return err
			}
		}
	case d.IsFunction():
		// A function is emitted directly only under the literal free-function
		// head; class-scoped kinds are reachable solely through an enclosing
		// aggregate sweep.
		if text, ok := d.Annotation(); ok && marker.HasFuncHead(text) {
			if err := s.emit(d, ""); err != nil {
				return err
			}
		}
	}

	for _, child := range d.Children {
		if err := s.walk(child); err != nil {
			return err
		}
	}
	return nil
}

// sweepAggregate decodes an aggregate's marker and offers every direct child
// for emission with the class name as context.
func (s *Scanner) sweepAggregate(d *decl.Declaration, text string) error {
	m, ok, err := marker.Decode(text)
	if err != nil {
		return wrapPos(d, err)
	}
	if !ok {
		return nil
	}
	class, err := marker.ClassDirective(m)
	if err != nil {
		return wrapPos(d, err)
	}
	for _, child := range d.Children {
		if err := s.emit(child, class); err != nil {
			return err
		}
	}
	return nil
}

// wrapPos prefixes err with the declaration's source position when known
func wrapPos(d *decl.Declaration, err error) error {
	if d.Pos.File == "" {
		return err
	}
	return fmt.Errorf("%s:%d: %w", d.Pos.File, d.Pos.Line, err)
}
