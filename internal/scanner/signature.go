package scanner

import (
	"fmt"

	"github.com/wasmfoundry/hostlink/internal/decl"
)

// extractSignature returns the ordered parameter type spellings and the
// return type spelling of a function-like declaration. Spellings pass
// through exactly as the front end rendered them; a function node without a
// signature is a front-end contract violation.
func extractSignature(d *decl.Declaration) ([]string, string, error) {
	if !d.IsFunction() || d.Sig == nil {
		return nil, "", fmt.Errorf("declaration %s has no signature", d.QualifiedName())
	}
	params := make([]string, len(d.Sig.Params))
	copy(params, d.Sig.Params)
	return params, d.Sig.Result, nil
}
