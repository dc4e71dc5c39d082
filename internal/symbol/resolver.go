// Package symbol produces the stable external names written into descriptor
// lines. The scanner treats the resolver as an opaque capability so tests and
// alternative manglers can be injected without touching traversal.
package symbol

import (
	"fmt"

	"github.com/wasmfoundry/hostlink/internal/decl"
)

// Resolver maps a function declaration to its stable external symbol
type Resolver interface {
	Resolve(d *decl.Declaration) (string, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface
type ResolverFunc func(d *decl.Declaration) (string, error)

// Resolve calls f
func (f ResolverFunc) Resolve(d *decl.Declaration) (string, error) {
	return f(d)
}

// LinkerResolver renders symbols the way the Go linker names them:
// pkgpath.Func for package functions, pkgpath.Recv.Method for value-receiver
// methods and pkgpath.(*Recv).Method for pointer-receiver methods.
type LinkerResolver struct{}

// NewLinkerResolver returns the default resolver used by the CLI
func NewLinkerResolver() LinkerResolver {
	return LinkerResolver{}
}

// Resolve renders the linker symbol for d
func (LinkerResolver) Resolve(d *decl.Declaration) (string, error) {
	if !d.IsFunction() {
		return "", fmt.Errorf("cannot resolve symbol for %s declaration %q", d.Kind, d.Name)
	}
	if d.Name == "" {
		return "", fmt.Errorf("cannot resolve symbol for unnamed function at %s:%d", d.Pos.File, d.Pos.Line)
	}

	name := d.Name
	if d.Receiver != "" {
		recv := d.Receiver
		if d.PtrReceiver {
			recv = "(*" + recv + ")"
		}
		name = recv + "." + name
	}
	if d.PkgPath == "" {
		return name, nil
	}
	return d.PkgPath + "." + name, nil
}
